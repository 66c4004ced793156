package models

// UpsertDayRequest запрос на конфигурацию рабочего дня
type UpsertDayRequest struct {
	AdminID   int64  `json:"adminId"`
	Date      string `json:"date"`      // "2026-03-15"
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
	Capacity  int    `json:"capacity"`
}

// SlotUnitResponse элементарный слот рабочего дня
type SlotUnitResponse struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
}

// DayScheduleResponse конфигурация рабочего дня
type DayScheduleResponse struct {
	Date      string             `json:"date"`
	OpenTime  string             `json:"openTime"`
	CloseTime string             `json:"closeTime"`
	Capacity  int                `json:"capacity"`
	Units     []SlotUnitResponse `json:"units"`
}
