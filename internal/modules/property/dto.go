package property

type CreatePropertyRequest struct {
	Name       string   `json:"name" binding:"required"`
	Address    string   `json:"address" binding:"required"`
	AccessNote string   `json:"access_note"`
	DoorCode   string   `json:"door_code"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
}

type UpdatePropertyRequest struct {
	Name       *string  `json:"name"`
	Address    *string  `json:"address"`
	AccessNote *string  `json:"access_note"`
	DoorCode   *string  `json:"door_code"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
}
