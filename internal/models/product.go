package models

// NewProductID — значение идентификатора, означающее «товар ещё не создан»:
// ближайшее сохранение выполнит создание, а не обновление.
const NewProductID = "new"

// Gender задаёт целевую аудиторию товара.
type Gender = string

// Допустимые значения Gender.
const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderKid    Gender = "kid"
	GenderUnisex Gender = "unisex"
)

// Product — товар каталога в том виде, в котором с ним работает клиент.
// Поле Images содержит полные URL, пригодные для показа.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Slug        string   `json:"slug"`
	Gender      Gender   `json:"gender"`
	Sizes       []string `json:"sizes"`
	Stock       int      `json:"stock"`
	Tags        []string `json:"tags"`
}

// RemoteProduct — товар в том виде, в котором его отдаёт сервер.
// Images здесь — голые имена файлов, которые сервер умеет отдавать
// по пути /files/product/{имя}.
type RemoteProduct struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Slug        string   `json:"slug"`
	Gender      string   `json:"gender"`
	Sizes       []string `json:"sizes"`
	Stock       int      `json:"stock"`
	Tags        []string `json:"tags"`
}

// DraftProduct — товар в том виде, в котором он приходит из формы
// редактирования. Черновик может быть частичным: полноту полей проверяет
// сервер, клиент проверяет лишь значения перечислений. Price и Stock
// остаются строками: их приведение к числам выполняется при сохранении,
// некорректный ввод превращается в 0.
// Images может содержать как серверные имена файлов, так и локальные
// пути со схемой file://.
type DraftProduct struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Stock       string   `json:"stock"`
	Slug        string   `json:"slug"`
	Gender      string   `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,oneof=XS S M L XL"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// NewEmptyProduct возвращает заготовку нового товара для экрана создания.
// Сетевых вызовов не требует.
func NewEmptyProduct() Product {
	return Product{
		ID:     "",
		Title:  "New product",
		Gender: GenderUnisex,
		Images: []string{},
		Sizes:  []string{},
		Tags:   []string{},
	}
}

// ProductFromRemote переводит серверное представление товара в клиентское.
// Имена файлов изображений разворачиваются в полные URL относительно
// baseURL. Функция чистая: вход не изменяется.
func ProductFromRemote(remote RemoteProduct, baseURL string) Product {
	images := make([]string, 0, len(remote.Images))
	for _, name := range remote.Images {
		images = append(images, baseURL+"/files/product/"+name)
	}
	return Product{
		ID:          remote.ID,
		Title:       remote.Title,
		Description: remote.Description,
		Price:       remote.Price,
		Images:      images,
		Slug:        remote.Slug,
		Gender:      remote.Gender,
		Sizes:       append([]string(nil), remote.Sizes...),
		Stock:       remote.Stock,
		Tags:        append([]string(nil), remote.Tags...),
	}
}
