package attendance

// フィールド名は既存クライアント互換で大文字AM/PMのまま
type AttendanceResponse struct {
	ID         uint64 `json:"id"`
	EmployeeID uint64 `json:"employee_id"`
	TimeInAM   string `json:"time_in_AM"`
	TimeOutAM  string `json:"time_out_AM"`
	TimeInPM   string `json:"time_in_PM"`
	TimeOutPM  string `json:"time_out_PM"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// POST /attendance。時刻は "H:MM AM/PM"（clock12）で受けて24時間表記に正規化して保存する。
type CreateAttendanceRequest struct {
	EmployeeID uint64 `json:"employee_id" binding:"required"`
	TimeInAM   string `json:"time_in_AM" binding:"required,clock12"`
	TimeOutAM  string `json:"time_out_AM" binding:"required,clock12"`
	TimeInPM   string `json:"time_in_PM" binding:"required,clock12"`
	TimeOutPM  string `json:"time_out_PM" binding:"required,clock12"`
	Status     string `json:"status" binding:"required"`
}

// PUT /attendance/:id。指定されたフィールドだけ検証・正規化して更新。
type UpdateAttendanceRequest struct {
	EmployeeID *uint64 `json:"employee_id" binding:"omitempty"`
	TimeInAM   *string `json:"time_in_AM" binding:"omitempty,clock12"`
	TimeOutAM  *string `json:"time_out_AM" binding:"omitempty,clock12"`
	TimeInPM   *string `json:"time_in_PM" binding:"omitempty,clock12"`
	TimeOutPM  *string `json:"time_out_PM" binding:"omitempty,clock12"`
	Status     *string `json:"status" binding:"omitempty,min=1"`
}

// Create応答。元クライアントは attendance と従業員名・日付を一緒に受け取る。
type CreatedResponse struct {
	Attendance   AttendanceResponse `json:"attendance"`
	EmployeeName string             `json:"employee_name"`
	Date         string             `json:"date"`
}
