package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-chat/internal/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoutHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NewLogoutHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, jwt.CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.True(t, c.Expires.Before(time.Now()))
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
}

func TestLoggedInAndGetTokenHandlers(t *testing.T) {
	tests := []struct {
		name          string
		cookie        string
		validateErr   error
		wantLoggedIn  string
		wantTokenBody string
	}{
		{
			name:          "no cookie",
			wantLoggedIn:  "false",
			wantTokenBody: "false",
		},
		{
			name:          "valid token",
			cookie:        "good",
			wantLoggedIn:  "true",
			wantTokenBody: `{"token":"good"}`,
		},
		{
			name:          "expired or tampered token",
			cookie:        "bad",
			validateErr:   errors.New("invalid"),
			wantLoggedIn:  "false",
			wantTokenBody: "false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			validator := NewMockTokenValidator(ctrl)
			if tt.cookie != "" {
				validator.EXPECT().Validate(gomock.Any(), tt.cookie).Return(tt.validateErr).Times(2)
			}

			for _, c := range []struct {
				handler http.HandlerFunc
				want    string
			}{
				{NewLoggedInHandler(validator), tt.wantLoggedIn},
				{NewGetTokenHandler(validator), tt.wantTokenBody},
			} {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				if tt.cookie != "" {
					req.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: tt.cookie})
				}
				w := httptest.NewRecorder()
				c.handler.ServeHTTP(w, req)

				assert.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, c.want, w.Body.String())
			}
		})
	}
}

func TestLoggedInHandler_IgnoresBearerHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/loggedIn", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()

	NewLoggedInHandler(NewMockTokenValidator(ctrl)).ServeHTTP(w, req)
	assert.JSONEq(t, "false", w.Body.String())
}

func TestRootHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NewRootHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello world", w.Body.String())
}
