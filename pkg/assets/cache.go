package assets

// RenderFunc derives a terminal rendering for an asset.
type RenderFunc func(*Asset) (string, error)

// RenderCache memoizes derived previews per asset identity. Entries are
// never dropped one by one; when the underlying images may have changed
// the whole cache is invalidated at once.
type RenderCache struct {
	render  RenderFunc
	entries map[string]string
}

// NewRenderCache wraps a render function in a memo table.
func NewRenderCache(render RenderFunc) *RenderCache {
	return &RenderCache{render: render, entries: make(map[string]string)}
}

// Get returns the cached rendering for the asset, deriving it on a miss.
func (c *RenderCache) Get(a *Asset) (string, error) {
	if cached, ok := c.entries[a.ID]; ok {
		return cached, nil
	}
	rendered, err := c.render(a)
	if err != nil {
		return "", err
	}
	c.entries[a.ID] = rendered
	return rendered, nil
}

// InvalidateAll empties the cache.
func (c *RenderCache) InvalidateAll() {
	c.entries = make(map[string]string)
}

// Len returns the number of cached entries.
func (c *RenderCache) Len() int {
	return len(c.entries)
}
