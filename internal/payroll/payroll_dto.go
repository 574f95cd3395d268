package payroll

type PayslipResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	EmployeeID  string  `json:"employee_id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	BaseSalary  int64   `json:"base_salary"`
	Allowance   int64   `json:"allowance"`
	Deduction   int64   `json:"deduction"`
	NetSalary   int64   `json:"net_salary"`
	Status      string  `json:"status"`
	PaidAt      *string `json:"paid_at,omitempty"`
}
