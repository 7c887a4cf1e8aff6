package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/vbonduro/restaurantinfo/internal/domain"
)

// PageView is everything the detail page template reads. A nil Restaurant
// renders the page shell only.
type PageView struct {
	Restaurant    *RestaurantView
	Reviews       []domain.Review
	ReviewsLoaded bool
}

type RestaurantView struct {
	ID      int64
	Name    string
	Address string
	Cuisine string
	Marker  MapMarker
	Picture *Picture
	Hours   []domain.DayHours
}

// MapMarker is handed to the mapping SDK through data attributes on the map
// container.
type MapMarker struct {
	Latitude  float64
	Longitude float64
}

type Picture struct {
	Images    ImageSet
	Sources   []PictureSource
	Alt       string
	Caption   string
	CaptionID string
}

type PictureSource struct {
	Media  string
	SrcSet string
}

// ImageSet holds the four URL variants of a restaurant photograph.
type ImageSet struct {
	Small1x string
	Small2x string
	Large1x string
	Large2x string
}

// NewImageSet derives the variants from a photograph reference such as "3"
// or "3.jpg". An empty reference yields an empty set.
func NewImageSet(photograph, baseURL string) ImageSet {
	name := strings.TrimSpace(photograph)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" {
		return ImageSet{}
	}
	variant := func(size, density string) string {
		return fmt.Sprintf("%s/%s-%s_%s.jpg", baseURL, name, size, density)
	}
	return ImageSet{
		Small1x: variant("small", "1x"),
		Small2x: variant("small", "2x"),
		Large1x: variant("large", "1x"),
		Large2x: variant("large", "2x"),
	}
}

func NewRestaurantView(r *domain.Restaurant, imageBaseURL string) *RestaurantView {
	v := &RestaurantView{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
		Cuisine: r.CuisineType,
		Marker:  MapMarker{Latitude: r.LatLng.Lat, Longitude: r.LatLng.Lng},
		Hours:   r.OperatingHours,
	}
	if images := NewImageSet(r.Photograph, imageBaseURL); images != (ImageSet{}) {
		v.Picture = newPicture(r, images)
	}
	return v
}

func newPicture(r *domain.Restaurant, images ImageSet) *Picture {
	alt := "restaurant " + r.Name
	if r.PhotoAlt != "" {
		alt += ", " + r.PhotoAlt
	}
	return &Picture{
		Images: images,
		Sources: []PictureSource{
			{Media: "(max-width:700px)", SrcSet: images.Small1x + " 1x, " + images.Small2x + " 2x"},
			{Media: "(min-width:701px)", SrcSet: images.Large1x + " 1x, " + images.Large2x + " 2x"},
		},
		Alt:       alt,
		Caption:   r.PhotoCaption,
		CaptionID: fmt.Sprintf("fig_%d", r.ID),
	}
}
