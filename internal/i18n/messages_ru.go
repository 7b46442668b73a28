package i18n

var messagesRU = map[string]string{
	"error.bad_request":             "Некорректный запрос",
	"error.not_found":               "Страница не найдена",
	"error.internal":                "Внутренняя ошибка сервера",
	"error.rate_limited":            "Слишком много запросов, повторите через %d с",
	"error.rate_limit_unavailable":  "Сервис ограничения запросов недоступен",
	"error.category_not_found":      "Категория не найдена",
	"error.category_empty":          "В категории нет изделий",
	"error.category_id_required":    "Не указана категория",
	"error.series_not_found":        "Серия не найдена",
	"error.section_not_found":       "Раздел не найден",
	"error.tags_not_found":          "Теги не найдены",
	"error.page_out_of_range":       "Страница не найдена",
	"error.page_not_configured":     "Страница не настроена",
	"error.product_not_found":       "Изделие не найдено",
	"error.catalog_fetch_failed":    "Не удалось загрузить каталог",
	"error.search_failed":           "Ошибка поиска",
	"error.cart_token_invalid":      "Некорректный токен корзины",
	"error.cart_empty":              "Корзина пуста",
	"error.cart_failed":             "Не удалось обновить корзину",
	"error.invalid_quantity":        "Некорректное количество",
	"error.option_not_available":    "Позиция недоступна для заказа",
	"error.order_create_failed":     "Не удалось оформить заказ",
	"error.order_too_many_items":    "Слишком много позиций в заказе",
	"error.captcha_invalid":         "Неверный код с картинки",
	"error.captcha_generate_failed": "Не удалось создать капчу",
	"error.price_list_failed":       "Не удалось получить прайс-лист",
	"error.price_list_not_ready":    "Прайс-лист ещё не сформирован",
	"error.contact_create_failed":   "Не удалось отправить заявку",
	"error.validation_failed":       "Проверьте правильность заполнения формы",
	"validation.required":           "Обязательное поле",
	"validation.email":              "Некорректный адрес электронной почты",
	"validation.max":                "Слишком длинное значение",
	"validation.min":                "Слишком короткое значение",
	"validation.url":                "Некорректный адрес сайта",
	"validation.activity":           "Выберите вид деятельности из списка",
	"validation.invalid":            "Некорректное значение",
}
