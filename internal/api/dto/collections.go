package dto

type BoundingBoxRequest struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

type CollectionsRequest struct {
	Region        string              `json:"region"`
	BBox          *BoundingBoxRequest `json:"bbox"`
	SearchRadiusM float64             `json:"search_radius_m"`
}

type CollectionResponse struct {
	Platform *BusStopResponse `json:"platform"`
	Stop     *BusStopResponse `json:"stop"`
}

type ListCollectionsResponse struct {
	Collections []CollectionResponse `json:"collections"`
}
