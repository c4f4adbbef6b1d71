package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmptyProduct(t *testing.T) {
	p := NewEmptyProduct()

	assert.Equal(t, "", p.ID)
	assert.Equal(t, "New product", p.Title)
	assert.Equal(t, GenderUnisex, p.Gender)
	assert.Empty(t, p.Images)
	assert.Empty(t, p.Sizes)
	assert.Empty(t, p.Tags)
	assert.Zero(t, p.Price)
	assert.Zero(t, p.Stock)
}

func TestProductFromRemote(t *testing.T) {
	remote := RemoteProduct{
		ID:          "abc-123",
		Title:       "Shirt",
		Description: "cotton",
		Price:       49.99,
		Images:      []string{"one.jpg", "two.png"},
		Slug:        "shirt",
		Gender:      GenderMen,
		Sizes:       []string{"S", "M"},
		Stock:       7,
		Tags:        []string{"shirt"},
	}

	p := ProductFromRemote(remote, "http://localhost:3000/api")

	assert.Equal(t, []string{
		"http://localhost:3000/api/files/product/one.jpg",
		"http://localhost:3000/api/files/product/two.png",
	}, p.Images)
	assert.Equal(t, remote.ID, p.ID)
	assert.Equal(t, remote.Price, p.Price)
	assert.Equal(t, remote.Stock, p.Stock)

	// вход не должен меняться
	assert.Equal(t, []string{"one.jpg", "two.png"}, remote.Images)
}

func TestProductFromRemote_NoImages(t *testing.T) {
	p := ProductFromRemote(RemoteProduct{ID: "x"}, "http://host")
	assert.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
}
