package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-chat/internal/jwt"
	"github.com/sbilibin2017/gw-chat/internal/models"
	"github.com/sbilibin2017/gw-chat/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedBody *models.ErrorResponse
		expectCookie bool
	}{
		{
			name:      "success",
			inputBody: models.LoginRequest{Email: "john@example.com", Password: "pass123"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "pass123").
					Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
			expectCookie: true,
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &models.ErrorResponse{ErrorMessage: "Please enter all required fields."},
		},
		{
			name:      "missing fields",
			inputBody: models.LoginRequest{Email: "john@example.com"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "").
					Return("", services.ErrMissingFields)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: &models.ErrorResponse{ErrorMessage: "Please enter all required fields."},
		},
		{
			name:      "user does not exist",
			inputBody: models.LoginRequest{Email: "nobody@example.com", Password: "pass123"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "nobody@example.com", "pass123").
					Return("", services.ErrUserDoesNotExist)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &models.ErrorResponse{ErrorMessage: "Wrong email or password."},
		},
		{
			name:      "wrong password",
			inputBody: models.LoginRequest{Email: "john@example.com", Password: "wrongpass"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "wrongpass").
					Return("", services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &models.ErrorResponse{ErrorMessage: "Wrong email or password."},
		},
		{
			name:      "internal error",
			inputBody: models.LoginRequest{Email: "john@example.com", Password: "pass123"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "pass123").
					Return("", errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			NewLoginHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedBody != nil {
				var resp models.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, *tt.expectedBody, resp)
			}

			cookies := w.Result().Cookies()
			if !tt.expectCookie {
				assert.Empty(t, cookies)
				return
			}
			assert.Empty(t, w.Body.String())
			require.Len(t, cookies, 1)
			c := cookies[0]
			assert.Equal(t, jwt.CookieName, c.Name)
			assert.Equal(t, "JWT_TOKEN", c.Value)
			assert.True(t, c.HttpOnly)
			assert.True(t, c.Secure)
			assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
		})
	}
}
