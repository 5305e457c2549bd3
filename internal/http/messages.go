package http

import "simrig-shop/internal/domain"

// Messages holds the user facing text for one site locale.
type Messages struct {
	Lang     string
	SiteName string

	Nav struct {
		Home, Catalog, Cockpits, Equip, Rent, About, Cart string
		Register, Login, Logout                         string
	}

	Form struct {
		FirstName, LastName, Username, Email, Password string
		City, PostalCode, Phone                        string
		Register, Login                                string
	}

	Greeting    string
	Welcome     string
	NoProducts  string
	Categories  map[string]string
	StaticPages map[string]StaticPage

	Registered         string
	RegisterFailed     string
	UsernameTaken      string
	EmailTaken         string
	DatabaseError      string
	ServerError        string
	InvalidCredentials string
}

// StaticPage is the text of an informational page.
type StaticPage struct {
	Title string
	Body  string
}

// Locales lists the supported site locales.
var Locales = map[string]*Messages{
	"en": english(),
	"ru": russian(),
}

func english() *Messages {
	m := &Messages{
		Lang:     "en",
		SiteName: "SimRig",

		Greeting:   "Hello, %s!",
		Welcome:    "Direct drive wheelbases, load cell pedals and cockpits for serious sim racing.",
		NoProducts: "No products in this category yet.",
		Categories: map[string]string{
			domain.CategoryBundles:    "Bundles",
			domain.CategoryWheelbases: "Wheelbases",
			domain.CategoryWheels:     "Wheels",
			domain.CategoryPedals:     "Pedals",
			domain.CategoryAddons:     "Add-ons",
		},
		StaticPages: map[string]StaticPage{
			"cockpits": {"Cockpits", "Aluminium profile rigs and seat mounts built to order."},
			"equip":    {"Equipment", "Everything you need to build a complete sim racing setup."},
			"about":    {"About us", "We are a small team of drivers who build the gear we race on."},
			"rent":     {"Rent a rig", "Try a full rig at home before you buy. Contact us for rental terms."},
			"cart":     {"Cart", "Your cart is empty."},
		},

		Registered:         "Registration successful! Please log in.",
		RegisterFailed:     "Registration failed: ",
		UsernameTaken:      "username already taken",
		EmailTaken:         "email already in use",
		DatabaseError:      "database error",
		ServerError:        "Server error: %s",
		InvalidCredentials: "Invalid credentials",
	}
	m.Nav.Home, m.Nav.Catalog, m.Nav.Cockpits = "Home", "Catalog", "Cockpits"
	m.Nav.Equip, m.Nav.Rent, m.Nav.About, m.Nav.Cart = "Equipment", "Rent", "About", "Cart"
	m.Nav.Register, m.Nav.Login, m.Nav.Logout = "Sign up", "Log in", "Log out"

	m.Form.FirstName, m.Form.LastName = "First name", "Last name"
	m.Form.Username, m.Form.Email, m.Form.Password = "Username", "Email", "Password"
	m.Form.City, m.Form.PostalCode, m.Form.Phone = "City", "Postal code", "Phone"
	m.Form.Register, m.Form.Login = "Create account", "Log in"
	return m
}

func russian() *Messages {
	m := &Messages{
		Lang:     "ru",
		SiteName: "SimRig",

		Greeting:   "Привет, %s!",
		Welcome:    "Рули с прямым приводом, тензометрические педали и кокпиты для симрейсинга.",
		NoProducts: "В этой категории пока нет товаров.",
		Categories: map[string]string{
			domain.CategoryBundles:    "Комплекты",
			domain.CategoryWheelbases: "Базы",
			domain.CategoryWheels:     "Рули",
			domain.CategoryPedals:     "Педали",
			domain.CategoryAddons:     "Дополнения",
		},
		StaticPages: map[string]StaticPage{
			"cockpits": {"Кокпиты", "Рамы из алюминиевого профиля и крепления сидений на заказ."},
			"equip":    {"Оборудование", "Всё, что нужно для полноценного симулятора."},
			"about":    {"О нас", "Мы небольшая команда гонщиков и сами собираем то, на чём ездим."},
			"rent":     {"Аренда", "Попробуйте симулятор дома перед покупкой. Условия аренды по запросу."},
			"cart":     {"Корзина", "Ваша корзина пуста."},
		},

		Registered:         "Регистрация прошла успешно! Пожалуйста, войдите в систему.",
		RegisterFailed:     "Ошибка регистрации: ",
		UsernameTaken:      "Этот никнейм уже занят",
		EmailTaken:         "Этот email уже используется",
		DatabaseError:      "Произошла ошибка в базе данных",
		ServerError:        "Ошибка сервера: %s",
		InvalidCredentials: "Неверные учетные данные",
	}
	m.Nav.Home, m.Nav.Catalog, m.Nav.Cockpits = "Главная", "Каталог", "Кокпиты"
	m.Nav.Equip, m.Nav.Rent, m.Nav.About, m.Nav.Cart = "Оборудование", "Аренда", "О нас", "Корзина"
	m.Nav.Register, m.Nav.Login, m.Nav.Logout = "Регистрация", "Вход", "Выход"

	m.Form.FirstName, m.Form.LastName = "Имя", "Фамилия"
	m.Form.Username, m.Form.Email, m.Form.Password = "Никнейм", "Email", "Пароль"
	m.Form.City, m.Form.PostalCode, m.Form.Phone = "Город", "Индекс", "Телефон"
	m.Form.Register, m.Form.Login = "Зарегистрироваться", "Войти"
	return m
}
