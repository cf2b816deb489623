package browse

import "github.com/five82/wallflower/internal/wallpaper"

// CarouselSize is the number of featured items.
const CarouselSize = 5

// Featured returns the first CarouselSize items, or nil when there are not
// enough items to fill the carousel.
func Featured(items []wallpaper.Record) []wallpaper.Record {
	if len(items) < CarouselSize {
		return nil
	}
	return items[:CarouselSize:CarouselSize]
}

// Carousel is the position within the featured items. Moving past either end
// wraps around.
type Carousel struct {
	index int
}

// Index returns the current position.
func (c Carousel) Index() int {
	return c.index
}

// Next advances one position within n items.
func (c Carousel) Next(n int) Carousel {
	if n <= 0 {
		return Carousel{}
	}
	return Carousel{index: (c.index + 1) % n}
}

// Prev moves back one position within n items.
func (c Carousel) Prev(n int) Carousel {
	if n <= 0 {
		return Carousel{}
	}
	return Carousel{index: (c.index - 1 + n) % n}
}

// Clamp keeps the position valid after the item count changes.
func (c Carousel) Clamp(n int) Carousel {
	if n <= 0 || c.index >= n || c.index < 0 {
		return Carousel{}
	}
	return c
}
