package posts

// Collection is an ordered, read-only set of posts. It is built once per load
// and never mutated, so it can be shared between goroutines.
type Collection struct {
	posts []Post
}

// NewCollection copies list into a new Collection.
func NewCollection(list []Post) *Collection {
	cp := make([]Post, len(list))
	copy(cp, list)
	return &Collection{posts: cp}
}

// All returns the posts in load order. The returned slice is a copy.
func (c *Collection) All() []Post {
	if c == nil {
		return nil
	}
	out := make([]Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Len returns the number of posts.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.posts)
}

// Find returns the first post whose slug equals slug.
func (c *Collection) Find(slug string) (Post, bool) {
	if c == nil {
		return Post{}, false
	}
	for _, p := range c.posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}
