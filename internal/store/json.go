package store

import (
	"github.com/inovacc/pplaces/internal/encoding"
	"github.com/inovacc/pplaces/internal/model"
)

// JSON keeps the cache as a single JSON array file.
type JSON struct {
	path string
}

var _ Store = (*JSON)(nil)

// NewJSON returns a JSON store backed by the file at path.
func NewJSON(path string) *JSON {
	return &JSON{path: path}
}

func (j *JSON) Read() (model.Cache, error) {
	data, err := encoding.ReadFile(j.path)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, ErrNoCache
	}

	c, err := encoding.ParseJSON[model.Cache](data)
	if err != nil {
		return nil, &CorruptError{Location: j.path, Err: err}
	}

	if *c == nil {
		return model.Cache{}, nil
	}

	return *c, nil
}

func (j *JSON) Write(c model.Cache) error {
	if c == nil {
		c = model.Cache{}
	}

	return encoding.SaveJSON(j.path, c)
}

func (j *JSON) Close() error {
	return nil
}
