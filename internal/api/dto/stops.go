package dto

type BusStopResponse struct {
	ID        int64   `json:"id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Name      string  `json:"name"`
	Explicit  bool    `json:"explicit"`
	Transport string  `json:"transport"`
}

type ListStopsResponse struct {
	Stops []BusStopResponse `json:"stops"`
}
