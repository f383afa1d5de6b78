package api

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errBadCredentials = errors.New("incorrect username or password")

func newRefreshToken() (raw, hash string, err error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = base64.RawURLEncoding.EncodeToString(buf)
	return raw, hashToken(raw), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (a *API) handleToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, errors.New("username and password are required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var user userModel
	err := orm.Where("username = ?", req.Username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusUnauthorized, errBadCredentials)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	if !user.IsActive {
		respondError(w, http.StatusUnauthorized, errBadCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, errBadCredentials)
		return
	}

	now := time.Now().UTC()
	access, err := a.issueAccessToken(user, now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	rawRefresh, refreshHash, err := newRefreshToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	record := refreshTokenModel{
		UserID:    user.ID,
		TokenHash: refreshHash,
		FamilyID:  uuid.New().String(),
		ExpiresAt: now.Add(a.config.RefreshTokenTTL),
	}
	if err := orm.Create(&record).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"access_token":  access,
		"refresh_token": rawRefresh,
		"token_type":    "bearer",
		"expires_in":    int(a.config.AccessTokenTTL.Seconds()),
	})
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.RefreshToken == "" {
		respondError(w, http.StatusBadRequest, errors.New("refresh_token is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var record refreshTokenModel
	err := orm.Where("token_hash = ?", hashToken(req.RefreshToken)).First(&record).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusUnauthorized, errInvalidToken)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	now := time.Now().UTC()

	// Reuse of an already-rotated token revokes the whole family.
	if record.RevokedAt != nil {
		orm.Model(&refreshTokenModel{}).
			Where("family_id = ? AND revoked_at IS NULL", record.FamilyID).
			Update("revoked_at", now)
		respondError(w, http.StatusUnauthorized, errInvalidToken)
		return
	}
	if record.ExpiresAt.Before(now) {
		respondError(w, http.StatusUnauthorized, errInvalidToken)
		return
	}

	var user userModel
	if err := orm.First(&user, "id = ?", record.UserID).Error; err != nil {
		respondError(w, http.StatusUnauthorized, errInvalidToken)
		return
	}

	if err := orm.Model(&record).Update("revoked_at", now).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	rawRefresh, refreshHash, err := newRefreshToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	next := refreshTokenModel{
		UserID:    user.ID,
		TokenHash: refreshHash,
		FamilyID:  record.FamilyID,
		ExpiresAt: now.Add(a.config.RefreshTokenTTL),
	}
	if err := orm.Create(&next).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	access, err := a.issueAccessToken(user, now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"access_token":  access,
		"refresh_token": rawRefresh,
		"token_type":    "bearer",
		"expires_in":    int(a.config.AccessTokenTTL.Seconds()),
	})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errMissingToken)
		return
	}
	respondJSON(w, http.StatusOK, user.toAPI())
}
