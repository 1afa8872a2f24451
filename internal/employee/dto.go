package employee

type EmployeeResponse struct {
	ID            uint64  `json:"id"`
	FirstName     string  `json:"first_name"`
	MiddleName    *string `json:"middle_name"`
	LastName      string  `json:"last_name"`
	DateOfBirth   string  `json:"date_of_birth"`
	PlaceOfBirth  string  `json:"place_of_birth"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	Address       string  `json:"address"`
	JobTitle      string  `json:"job_title"`
	Department    string  `json:"department"`
	Status        string  `json:"status"`
	DateOfService string  `json:"date_of_service"`
	Salary        float64 `json:"salary"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// POST / PUT: 全フィールド必須。age は [20,60]、salary は非負。
type CreateEmployeeRequest struct {
	FirstName     string   `json:"first_name" binding:"required"`
	MiddleName    *string  `json:"middle_name"`
	LastName      string   `json:"last_name" binding:"required"`
	DateOfBirth   string   `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	PlaceOfBirth  string   `json:"place_of_birth" binding:"required"`
	Age           int      `json:"age" binding:"required,min=20,max=60"`
	Sex           string   `json:"sex" binding:"required,oneof=Male Female"`
	Address       string   `json:"address" binding:"required"`
	JobTitle      string   `json:"job_title" binding:"required"`
	Department    string   `json:"department" binding:"required"`
	Status        string   `json:"status" binding:"required"`
	DateOfService string   `json:"date_of_service" binding:"required,datetime=2006-01-02"`
	Salary        *float64 `json:"salary" binding:"required,gte=0"` // 0円を required で落とさないためポインタ
}

func (r CreateEmployeeRequest) attrs() employeeAttrs {
	return employeeAttrs{
		FirstName:     r.FirstName,
		MiddleName:    r.MiddleName,
		LastName:      r.LastName,
		DateOfBirth:   r.DateOfBirth,
		PlaceOfBirth:  r.PlaceOfBirth,
		Age:           r.Age,
		Sex:           r.Sex,
		Address:       r.Address,
		JobTitle:      r.JobTitle,
		Department:    r.Department,
		Status:        r.Status,
		DateOfService: r.DateOfService,
		Salary:        *r.Salary,
	}
}

// PATCH: 全フィールド任意。ただし指定されたフィールドは各自のルールを満たすこと。
// age の [20,60] 制約は create/replace のみ（部分更新では整数であればよい）。
type PatchEmployeeRequest struct {
	FirstName     *string  `json:"first_name" binding:"omitempty,min=1"`
	MiddleName    *string  `json:"middle_name"`
	LastName      *string  `json:"last_name" binding:"omitempty,min=1"`
	DateOfBirth   *string  `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	PlaceOfBirth  *string  `json:"place_of_birth" binding:"omitempty,min=1"`
	Age           *int     `json:"age" binding:"omitempty"`
	Sex           *string  `json:"sex" binding:"omitempty,oneof=Male Female"`
	Address       *string  `json:"address" binding:"omitempty,min=1"`
	JobTitle      *string  `json:"job_title" binding:"omitempty,min=1"`
	Department    *string  `json:"department" binding:"omitempty,min=1"`
	Status        *string  `json:"status" binding:"omitempty,min=1"`
	DateOfService *string  `json:"date_of_service" binding:"omitempty,datetime=2006-01-02"`
	Salary        *float64 `json:"salary" binding:"omitempty,gte=0"`
}

// changes: SET句と引数を宣言順で返す（順序が揺れるとテストできない）
func (r PatchEmployeeRequest) changes() ([]string, []any) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if r.FirstName != nil {
		set("first_name", *r.FirstName)
	}
	if r.MiddleName != nil {
		set("middle_name", *r.MiddleName)
	}
	if r.LastName != nil {
		set("last_name", *r.LastName)
	}
	if r.DateOfBirth != nil {
		set("date_of_birth", *r.DateOfBirth)
	}
	if r.PlaceOfBirth != nil {
		set("place_of_birth", *r.PlaceOfBirth)
	}
	if r.Age != nil {
		set("age", *r.Age)
	}
	if r.Sex != nil {
		set("sex", *r.Sex)
	}
	if r.Address != nil {
		set("address", *r.Address)
	}
	if r.JobTitle != nil {
		set("job_title", *r.JobTitle)
	}
	if r.Department != nil {
		set("department", *r.Department)
	}
	if r.Status != nil {
		set("status", *r.Status)
	}
	if r.DateOfService != nil {
		set("date_of_service", *r.DateOfService)
	}
	if r.Salary != nil {
		set("salary", *r.Salary)
	}
	return sets, args
}

// GET /employees のクエリパラメータ。
// 不正な sex や範囲外の age は黙殺せずバリデーションエラーにする。
type ListEmployeesQuery struct {
	Department *string `form:"department"`
	Status     *string `form:"status"`
	JobTitle   *string `form:"job_title"`
	Sex        *string `form:"sex" binding:"omitempty,oneof=Male Female"`
	Age        *int    `form:"age" binding:"omitempty,min=20"`
	AgeMin     *int    `form:"age_min" binding:"omitempty,min=20"`
	AgeMax     *int    `form:"age_max" binding:"omitempty,max=60"`
	Search     *string `form:"search"`
}

type BulkUpdateRequest struct {
	IDs  []uint64             `json:"ids" binding:"required,min=1"`
	Data PatchEmployeeRequest `json:"data"`
}

type BulkDeleteRequest struct {
	IDs []uint64 `json:"ids" binding:"required,min=1"`
}
