package web

import (
	"github.com/vbonduro/restaurantinfo/internal/domain"
	"github.com/vbonduro/restaurantinfo/internal/render"
)

// pageSession is the state of one detail-page request. It is built by the
// handler, filled as each fetch branch completes, and handed to the renderer.
type pageSession struct {
	restaurantID  string
	restaurant    *render.RestaurantView
	reviews       []domain.Review
	reviewsLoaded bool
}

func (p *pageSession) view() render.PageView {
	return render.PageView{
		Restaurant:    p.restaurant,
		Reviews:       p.reviews,
		ReviewsLoaded: p.reviewsLoaded,
	}
}
