package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelector_Match(t *testing.T) {
	selector := NewSelector()

	tests := []struct {
		path    string
		route   Route
		matched bool
	}{
		{"/", ListRoute(), true},
		{"", ListRoute(), true},
		{"/add", CreateRoute(), true},
		{"/add/", CreateRoute(), true},
		{"/event/3", DetailRoute(3), true},
		{"/event/042", DetailRoute(42), true},
		{"/event/abc", Route{}, false},
		{"/event/", Route{}, false},
		{"/event/-1", Route{}, false},
		{"/event/99999999999999999999999", Route{}, false},
		{"/unknown", Route{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, ok := selector.Match(tt.path)

			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.route, route)
		})
	}
}

func TestSelector_Resolve(t *testing.T) {
	selector := NewSelector()

	assert.Equal(t, DetailRoute(7), selector.Resolve("/event/7"))
	assert.Equal(t, ListRoute(), selector.Resolve("/nowhere"))
	assert.Equal(t, ListRoute(), selector.Resolve("/event/x"))
}

func TestSelector_Path(t *testing.T) {
	selector := NewSelector()

	assert.Equal(t, "/", selector.Path(ListRoute()))
	assert.Equal(t, "/add", selector.Path(CreateRoute()))
	assert.Equal(t, "/event/12", selector.Path(DetailRoute(12)))
	assert.Equal(t, DetailRoute(12), selector.Resolve(selector.Path(DetailRoute(12))))
}

func TestView_String(t *testing.T) {
	assert.Equal(t, "list", List.String())
	assert.Equal(t, "create", Create.String())
	assert.Equal(t, "detail", Detail.String())
}
