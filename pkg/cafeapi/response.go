package cafeapi

import (
	"net/http"

	"github.com/tidwall/gjson"
)

// Response is a backend reply. Fields are read leniently: a missing or
// mistyped field yields the supplied default instead of an error.
type Response struct {
	StatusCode int
	body       []byte
}

func NewResponse(status int, body []byte) *Response {
	return &Response{StatusCode: status, body: body}
}

func (r *Response) Is(status int) bool {
	return r != nil && r.StatusCode == status
}

func (r *Response) OK() bool      { return r.Is(http.StatusOK) }
func (r *Response) Created() bool { return r.Is(http.StatusCreated) }

func (r *Response) Get(path string) gjson.Result {
	if r == nil || len(r.body) == 0 {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.body, path)
}

// String returns the field at path rendered as text, or def when absent or null.
func (r *Response) String(path, def string) string {
	v := r.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return def
	}
	return v.String()
}

// Items returns the array at path; anything that is not an array yields nil.
func (r *Response) Items(path string) []gjson.Result {
	v := r.Get(path)
	if !v.IsArray() {
		return nil
	}
	return v.Array()
}
