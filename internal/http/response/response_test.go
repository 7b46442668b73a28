package response

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stroyprombeton/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		data interface{}
		want map[string]interface{}
	}{
		{name: "nil", data: nil, want: map[string]interface{}{"request_id": "req-1"}},
		{name: "map", data: gin.H{"fields": "x"}, want: map[string]interface{}{"request_id": "req-1", "fields": "x"}},
		{name: "scalar", data: 7, want: map[string]interface{}{"request_id": "req-1", "data": float64(7)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set(constants.ContextKeyRequestID, "req-1")
			ErrorWithData(c, CodeBadRequest, "bad", tc.data)

			var resp struct {
				StatusCode int                    `json:"status_code"`
				Data       map[string]interface{} `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response failed: %v", err)
			}
			if resp.StatusCode != CodeBadRequest {
				t.Fatalf("status_code want %d got %d", CodeBadRequest, resp.StatusCode)
			}
			if len(resp.Data) != len(tc.want) {
				t.Fatalf("data want %v got %v", tc.want, resp.Data)
			}
			for key, value := range tc.want {
				if resp.Data[key] != value {
					t.Fatalf("data[%s] want %v got %v", key, value, resp.Data[key])
				}
			}
		})
	}
}

func TestSuccessWithoutRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Success(c, []int{1, 2})
	if strings.TrimSpace(w.Body.String()) != `{"status_code":0,"msg":"success","data":[1,2]}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
