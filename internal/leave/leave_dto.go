package leave

const dateLayout = "2006-01-02"

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Reason     string `json:"reason" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

// UpdateLeaveRequest memakai pointer supaya field yang tidak dikirim
// client bisa dibedakan dari string kosong; field nil mempertahankan
// nilai lama lewat mergeUpdate.
type UpdateLeaveRequest struct {
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
	Reason     *string `json:"reason" binding:"omitempty"`
	StartDate  *string `json:"start_date" binding:"omitempty"`
	EndDate    *string `json:"end_date" binding:"omitempty"`
}

type LeaveResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Reason       string `json:"reason"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalDays    int    `json:"total_days"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type EmployeeWithLeavesResponse struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Gender         string          `json:"gender"`
	Leaves         []LeaveResponse `json:"leaves"`
	TotalLeaveDays int             `json:"total_leave_days"`
}
