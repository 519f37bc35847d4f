package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pixshelf/internal/domain"
)

func folder(id, name string) domain.Folder {
	return domain.Folder{ID: id, Name: name, OwnerID: "u1"}
}

func image(id, name string) domain.Image {
	return domain.Image{ID: id, Name: name, OwnerID: "u1"}
}

func TestListingStartsUnloaded(t *testing.T) {
	var l Listing
	assert.False(t, l.Loaded())
	assert.False(t, l.Empty())
}

func TestListingApplyLoadsBothHalves(t *testing.T) {
	var l Listing
	l.Apply([]domain.Folder{folder("f1", "Photos")}, nil)

	assert.True(t, l.Loaded())
	assert.Len(t, l.Folders(), 1)
	assert.NotNil(t, l.Images())
	assert.Empty(t, l.Images())
}

func TestListingEmptyOnlyWhenLoadedEmpty(t *testing.T) {
	var l Listing
	l.Apply([]domain.Folder{}, []domain.Image{})
	assert.True(t, l.Empty())

	l.Apply([]domain.Folder{folder("f1", "Photos")}, []domain.Image{})
	assert.False(t, l.Empty())
}

func TestListingResetMarksUnloaded(t *testing.T) {
	var l Listing
	l.Apply([]domain.Folder{}, []domain.Image{})
	l.Reset()

	assert.False(t, l.Loaded())
	assert.Nil(t, l.Folders())
	assert.Nil(t, l.Images())
}

func TestPrependFolderPutsNewEntryFirst(t *testing.T) {
	var l Listing
	l.Apply([]domain.Folder{folder("f1", "Old")}, []domain.Image{})

	l.PrependFolder(folder("f2", "Photos"))

	assert.Equal(t, "Photos", l.Folders()[0].Name)
	assert.Equal(t, "Old", l.Folders()[1].Name)
}

func TestPrependImagesKeepsBatchOrder(t *testing.T) {
	var l Listing
	l.Apply([]domain.Folder{}, []domain.Image{image("i1", "old.png")})

	l.PrependImages([]domain.Image{image("i2", "a.png"), image("i3", "b.png")})

	imgs := l.Images()
	assert.Len(t, imgs, 3)
	assert.Equal(t, "a.png", imgs[0].Name)
	assert.Equal(t, "b.png", imgs[1].Name)
	assert.Equal(t, "old.png", imgs[2].Name)
}
