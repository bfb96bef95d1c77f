package model

// User maps to users. A user is a staff account: EDP administrators,
// deans, principals, coordinators, chairpersons and the executive roles.
// Teachers under observation are a separate entity.
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email              string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(30);not null"                      json:"role"`
	DepartmentID       string `gorm:"type:uuid;not null"                             json:"department_id"`
	IsActive           bool   `gorm:"not null;default:true"                          json:"is_active"`
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	BaseModel

	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
