package product

// Stats describes the cache contents.
type Stats struct {
	Cached      int
	Initialized bool
}

// Cache is a lazily populated index from product code to Product.
//
// Lookups that miss fall back to a linear scan of the source and store any
// match. The cache never learns about deletions on its own: whoever removes
// a product from the source must call Remove as well.
type Cache struct {
	src         Source
	entries     map[string]Product
	initialized bool
}

// NewCache returns an empty cache over src.
func NewCache(src Source) *Cache {
	return &Cache{src: src, entries: make(map[string]Product)}
}

// Initialize preloads every product from the source. Only the first call
// has an effect.
func (c *Cache) Initialize() {
	if c.initialized {
		return
	}
	for _, p := range c.src.Products() {
		c.entries[p.Code] = p
	}
	c.initialized = true
}

// Get returns the product for code.
func (c *Cache) Get(code string) (Product, bool) {
	if p, ok := c.entries[code]; ok {
		return p, true
	}
	for _, p := range c.src.Products() {
		if p.Code == code {
			c.entries[code] = p
			return p, true
		}
	}
	return Product{}, false
}

// Put stores p, replacing any entry with the same code.
func (c *Cache) Put(p Product) {
	c.entries[p.Code] = p
}

// Remove drops the entry for code.
func (c *Cache) Remove(code string) {
	delete(c.entries, code)
}

// Clear empties the cache and allows Initialize to run again.
func (c *Cache) Clear() {
	c.entries = make(map[string]Product)
	c.initialized = false
}

// Stats reports the number of cached products and whether Initialize ran.
func (c *Cache) Stats() Stats {
	return Stats{Cached: len(c.entries), Initialized: c.initialized}
}
