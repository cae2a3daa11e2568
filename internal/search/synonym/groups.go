package synonym

// DefaultGroups is the built-in dictionary. Groups must stay disjoint.
var DefaultGroups = [][]string{
	{"it", "cntt", "công nghệ thông tin", "information technology", "tech"},
	{"developer", "lập trình viên", "dev", "programmer", "software engineer"},
	{"tester", "qa", "qc", "kiểm thử", "kiểm thử phần mềm"},
	{"designer", "thiết kế", "design", "ui/ux"},
	{"marketing", "tiếp thị", "digital marketing"},
	{"sales", "kinh doanh", "bán hàng", "nhân viên kinh doanh"},
	{"kế toán", "accountant", "accounting"},
	{"nhân sự", "hr", "human resources", "tuyển dụng", "recruiter"},
	{"chăm sóc khách hàng", "customer service", "cskh"},
	{"quản lý", "manager", "trưởng phòng"},
	{"ngân hàng", "banking", "tài chính", "finance"},
	{"giáo viên", "teacher", "giảng viên"},
	{"tài xế", "lái xe", "driver"},
	{"data", "dữ liệu", "data analyst", "phân tích dữ liệu"},
}
