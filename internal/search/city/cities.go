package city

// VietnamCities lists provinces and centrally governed cities.
var VietnamCities = []string{
	"Hà Nội",
	"Hồ Chí Minh",
	"Đà Nẵng",
	"Hải Phòng",
	"Cần Thơ",
	"An Giang",
	"Bà Rịa - Vũng Tàu",
	"Bắc Giang",
	"Bắc Kạn",
	"Bạc Liêu",
	"Bắc Ninh",
	"Bến Tre",
	"Bình Định",
	"Bình Dương",
	"Bình Phước",
	"Bình Thuận",
	"Cà Mau",
	"Cao Bằng",
	"Đắk Lắk",
	"Đắk Nông",
	"Điện Biên",
	"Đồng Nai",
	"Đồng Tháp",
	"Gia Lai",
	"Hà Giang",
	"Hà Nam",
	"Hà Tĩnh",
	"Hải Dương",
	"Hậu Giang",
	"Hòa Bình",
	"Hưng Yên",
	"Khánh Hòa",
	"Kiên Giang",
	"Kon Tum",
	"Lai Châu",
	"Lâm Đồng",
	"Lạng Sơn",
	"Lào Cai",
	"Long An",
	"Nam Định",
	"Nghệ An",
	"Ninh Bình",
	"Ninh Thuận",
	"Phú Thọ",
	"Phú Yên",
	"Quảng Bình",
	"Quảng Nam",
	"Quảng Ngãi",
	"Quảng Ninh",
	"Quảng Trị",
	"Sóc Trăng",
	"Sơn La",
	"Tây Ninh",
	"Thái Bình",
	"Thái Nguyên",
	"Thanh Hóa",
	"Thừa Thiên Huế",
	"Tiền Giang",
	"Trà Vinh",
	"Tuyên Quang",
	"Vĩnh Long",
	"Vĩnh Phúc",
	"Yên Bái",
}

// Default returns a gazetteer over VietnamCities.
func Default() *Gazetteer {
	return NewGazetteer(VietnamCities)
}
