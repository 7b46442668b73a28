package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/constants"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/provider"
	"github.com/stroyprombeton/internal/seed"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type publicFixture struct {
	router *gin.Engine
	trays  *models.Category
	tray   *models.Product
	option *models.Option
}

func newPublicFixture(t *testing.T) publicFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	b := seed.NewBuilder(db)
	trays := b.Category("Лотки", nil, true)
	tray := b.Product("Лоток", trays, true)
	options := b.Options(tray, 30, "100.50")
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	cfg := &config.Config{
		Catalog: config.CatalogConfig{
			DesktopPageSize:     24,
			MobilePageSize:      12,
			FetchDefaultLimit:   24,
			StepMultipliers:     []int{12, 24},
			TagsUILimit:         10,
			PaginationNeighbors: 5,
			Ordering:            []string{"product_name", "mark"},
			SearchLimit:         20,
			AutocompleteLimit:   10,
		},
		Site:  config.SiteConfig{Name: "Stroyprombeton", BaseURL: "https://example.test", Phones: []string{"+7 812 000-00-00"}},
		Pages: map[string]config.PageMetaConfig{"order": {H1: "Оформление заказа"}},
		Order: config.OrderConfig{NumberPrefix: "SPB", MaxPositions: 10, MaxQuantity: 100},
	}
	h := New(provider.NewContainer(cfg))

	r := gin.New()
	r.GET("/config", h.GetConfig)
	r.GET("/categories", h.GetCategoryTree)
	r.GET("/categories/:id", h.GetCategoryPage)
	r.POST("/categories/fetch-options", h.FetchOptions)
	r.GET("/products/:id", h.GetProductPage)
	r.GET("/pages/:slug/meta", h.GetPageMeta)
	r.GET("/cart", h.GetCart)
	r.POST("/cart/add", h.AddToCart)
	r.POST("/orders", h.CreateOrder)
	r.POST("/backcall", h.CreateBackcall)
	r.POST("/price-request", h.CreatePriceRequest)

	return publicFixture{router: r, trays: trays, tray: tray, option: options[0]}
}

func (f publicFixture) do(method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Buffer
	contentType := "application/json"
	switch v := body.(type) {
	case nil:
		reader = bytes.NewBuffer(nil)
	case url.Values:
		reader = bytes.NewBufferString(v.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		raw, _ := json.Marshal(v)
		reader = bytes.NewBuffer(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", contentType)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestGetCategoryPage(t *testing.T) {
	f := newPublicFixture(t)

	w, env := f.do(http.MethodGet, fmt.Sprintf("/categories/%d?page=2", f.trays.ID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.StatusCode)

	var page struct {
		Products   []json.RawMessage `json:"products"`
		Pagination struct {
			Number     int  `json:"number"`
			TotalPages int  `json:"total_pages"`
			HasNext    bool `json:"has_next"`
		} `json:"pagination"`
		TotalProducts int64 `json:"total_products"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Products, 6)
	assert.Equal(t, int64(30), page.TotalProducts)
	assert.Equal(t, 2, page.Pagination.Number)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
}

func TestGetCategoryPageErrors(t *testing.T) {
	f := newPublicFixture(t)

	tests := []struct {
		name string
		path string
		code int
		msg  string
	}{
		{name: "unknown category", path: "/categories/999", code: 404, msg: "Категория не найдена"},
		{name: "bad id", path: "/categories/abc", code: 404, msg: "Категория не найдена"},
		{name: "page out of range", path: fmt.Sprintf("/categories/%d?page=9", f.trays.ID), code: 404, msg: "Страница не найдена"},
		{name: "step not allowed", path: fmt.Sprintf("/categories/%d?step=7", f.trays.ID), code: 404, msg: "Страница не найдена"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env := f.do(http.MethodGet, tt.path, nil, nil)
			assert.Equal(t, tt.code, env.StatusCode)
			assert.Equal(t, tt.msg, env.Msg)
		})
	}
}

func TestErrorMessageFollowsLocale(t *testing.T) {
	f := newPublicFixture(t)

	_, env := f.do(http.MethodGet, "/categories/999", nil, map[string]string{"Accept-Language": "en-US,en;q=0.9"})
	assert.Equal(t, 404, env.StatusCode)
	assert.NotEqual(t, "Категория не найдена", env.Msg)
}

func TestFetchOptionsForm(t *testing.T) {
	f := newPublicFixture(t)

	form := url.Values{}
	form.Set("categoryId", fmt.Sprintf("%d", f.trays.ID))
	form.Set("offset", "24")
	form.Set("limit", "24")
	_, env := f.do(http.MethodPost, "/categories/fetch-options", form, nil)
	assert.Equal(t, 0, env.StatusCode)

	var result struct {
		Products []json.RawMessage `json:"products"`
		HasMore  bool              `json:"has_more"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Len(t, result.Products, 6)
	assert.False(t, result.HasMore)

	_, env = f.do(http.MethodPost, "/categories/fetch-options", url.Values{}, nil)
	assert.Equal(t, 400, env.StatusCode)
}

func TestCartAddIssuesToken(t *testing.T) {
	f := newPublicFixture(t)

	w, env := f.do(http.MethodPost, "/cart/add", gin.H{"option_id": f.option.ID, "quantity": 2}, nil)
	assert.Equal(t, 0, env.StatusCode)
	token := w.Header().Get(constants.HeaderCartToken)
	assert.NotEmpty(t, token)

	_, env = f.do(http.MethodGet, "/cart", nil, map[string]string{constants.HeaderCartToken: token})
	var cart struct {
		Token         string `json:"token"`
		TotalQuantity int    `json:"total_quantity"`
		TotalPrice    string `json:"total_price"`
		Positions     []struct {
			CatalogName string `json:"catalog_name"`
		} `json:"positions"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, token, cart.Token)
	assert.Equal(t, 2, cart.TotalQuantity)
	assert.Equal(t, "201.00", cart.TotalPrice)
	if assert.Len(t, cart.Positions, 1) {
		assert.Equal(t, "Лотки", cart.Positions[0].CatalogName)
	}

	_, env = f.do(http.MethodGet, "/cart", nil, map[string]string{constants.HeaderCartToken: "not-a-uuid"})
	assert.Equal(t, 400, env.StatusCode)

	_, env = f.do(http.MethodPost, "/cart/add", gin.H{"option_id": 99999}, nil)
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Позиция недоступна для заказа", env.Msg)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newPublicFixture(t)

	w, _ := f.do(http.MethodPost, "/cart/add", gin.H{"option_id": f.option.ID}, nil)
	token := w.Header().Get(constants.HeaderCartToken)

	_, env := f.do(http.MethodPost, "/orders", gin.H{"name": "Иван", "email": "bad"}, map[string]string{constants.HeaderCartToken: token})
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Проверьте правильность заполнения формы", env.Msg)

	var data struct {
		Fields map[string]string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Некорректный адрес электронной почты", data.Fields["email"])
	assert.Equal(t, "Обязательное поле", data.Fields["phone"])
	assert.NotContains(t, data.Fields, "name")
}

func TestCreateOrder(t *testing.T) {
	f := newPublicFixture(t)

	w, _ := f.do(http.MethodPost, "/cart/add", gin.H{"option_id": f.option.ID, "quantity": 3}, nil)
	token := w.Header().Get(constants.HeaderCartToken)
	headers := map[string]string{constants.HeaderCartToken: token}
	form := gin.H{"name": "Иван", "email": "ivan@example.test", "phone": "+7 900 000-00-00"}

	_, env := f.do(http.MethodPost, "/orders", form, headers)
	assert.Equal(t, 0, env.StatusCode)
	var order struct {
		OrderNo    string            `json:"order_no"`
		TotalPrice string            `json:"total_price"`
		Positions  []json.RawMessage `json:"positions"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &order))
	assert.True(t, strings.HasPrefix(order.OrderNo, "SPB"))
	assert.Equal(t, "301.50", order.TotalPrice)
	assert.Len(t, order.Positions, 1)

	_, env = f.do(http.MethodPost, "/orders", form, headers)
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Корзина пуста", env.Msg)

	_, env = f.do(http.MethodPost, "/orders", form, nil)
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Некорректный токен корзины", env.Msg)
}

func TestGetPageMetaAndConfig(t *testing.T) {
	f := newPublicFixture(t)

	_, env := f.do(http.MethodGet, "/pages/order/meta", nil, nil)
	assert.Equal(t, 0, env.StatusCode)
	assert.Contains(t, string(env.Data), "Оформление заказа")

	_, env = f.do(http.MethodGet, "/pages/unknown/meta", nil, nil)
	assert.Equal(t, 404, env.StatusCode)

	_, env = f.do(http.MethodGet, "/config", nil, nil)
	assert.Equal(t, 0, env.StatusCode)
	assert.Contains(t, string(env.Data), `"captcha_required":false`)
	assert.Contains(t, string(env.Data), "Проектная организация")
}

func TestGetProductPage(t *testing.T) {
	f := newPublicFixture(t)

	_, env := f.do(http.MethodGet, fmt.Sprintf("/products/%d", f.tray.ID), nil, nil)
	assert.Equal(t, 0, env.StatusCode)
	var page struct {
		Options []json.RawMessage `json:"options"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Options, 30)

	_, env = f.do(http.MethodGet, "/products/0", nil, nil)
	assert.Equal(t, 404, env.StatusCode)
}

func TestCreateBackcall(t *testing.T) {
	f := newPublicFixture(t)

	_, env := f.do(http.MethodPost, "/backcall", gin.H{"name": "Иван"}, nil)
	assert.Equal(t, 400, env.StatusCode)
	var invalid struct {
		Fields map[string]string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &invalid))
	assert.Equal(t, "Обязательное поле", invalid.Fields["phone"])

	form := url.Values{"name": {"Иван"}, "phone": {"+7 900 000-00-00"}, "url": {"https://example.test/catalog/"}}
	w, env := f.do(http.MethodPost, "/backcall", form, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.StatusCode)
	var data struct {
		ID uint `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &data))

	var stored models.ContactRequest
	assert.NoError(t, models.DB.First(&stored, data.ID).Error)
	assert.Equal(t, models.ContactKindBackcall, stored.Kind)
	assert.Equal(t, "https://example.test/catalog/", stored.PageURL)
}

func TestCreatePriceRequest(t *testing.T) {
	f := newPublicFixture(t)

	_, env := f.do(http.MethodPost, "/price-request", gin.H{
		"phone":    "+7 900 000-00-00",
		"email":    "buyer@example.test",
		"company":  "ООО Бетон",
		"city":     "Санкт-Петербург",
		"activity": "Космонавтика",
		"site":     "not a site",
	}, nil)
	assert.Equal(t, 400, env.StatusCode)
	var invalid struct {
		Fields map[string]string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &invalid))
	assert.Equal(t, "Выберите вид деятельности из списка", invalid.Fields["activity"])
	assert.Equal(t, "Некорректный адрес сайта", invalid.Fields["site"])
	assert.NotContains(t, invalid.Fields, "name")

	w, env := f.do(http.MethodPost, "/price-request", gin.H{
		"phone":    "+7 900 000-00-00",
		"email":    "buyer@example.test",
		"company":  "ООО Бетон",
		"city":     "Санкт-Петербург",
		"activity": "Проектная организация",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.StatusCode)

	var count int64
	assert.NoError(t, models.DB.Model(&models.ContactRequest{}).Where("kind = ?", models.ContactKindPrice).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
