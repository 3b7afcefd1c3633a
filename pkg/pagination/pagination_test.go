package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	return FromRequest(httptest.NewRequest(http.MethodGet, "/products"+query, nil))
}

func TestFromRequestDefaults(t *testing.T) {
	p := paramsFor(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequestValues(t *testing.T) {
	p := paramsFor(t, "?page=3&per_page=10")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 20, p.Offset)
}

func TestFromRequestIgnoresInvalid(t *testing.T) {
	p := paramsFor(t, "?page=-1&per_page=1000")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}
