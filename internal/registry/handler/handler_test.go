package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"civreg/internal/platform/middleware"
	registryservice "civreg/internal/registry/service"
	registrystore "civreg/internal/registry/store"
	id "civreg/pkg/domain"
)

const owner = id.Identity("owner")

type RegistryHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func (s *RegistryHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := registryservice.NewService(owner, registrystore.NewMemory(), logger)

	s.router = chi.NewRouter()
	New(service, logger, nil).Register(s.router)
}

func TestRegistryHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistryHandlerSuite))
}

func (s *RegistryHandlerSuite) do(identity id.Identity, method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if !identity.IsZero() {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RegistryHandlerSuite) errorCode(w *httptest.ResponseRecorder) string {
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error"].(string)
	return code
}

func (s *RegistryHandlerSuite) TestRegisterCitizen() {
	w := s.do("alice", http.MethodPost, "/registry/citizens", RegisterCitizenRequest{NationalIDHash: "hash-a"})
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	s.Run("duplicate identity maps to 409", func() {
		w := s.do("alice", http.MethodPost, "/registry/citizens", RegisterCitizenRequest{NationalIDHash: "hash-b"})
		assert.Equal(s.T(), http.StatusConflict, w.Code)
		assert.Equal(s.T(), "identity_already_registered", s.errorCode(w))
	})

	s.Run("duplicate hash maps to 409", func() {
		w := s.do("bob", http.MethodPost, "/registry/citizens", RegisterCitizenRequest{NationalIDHash: "hash-a"})
		assert.Equal(s.T(), http.StatusConflict, w.Code)
		assert.Equal(s.T(), "national_id_already_claimed", s.errorCode(w))
	})

	s.Run("blank hash fails validation", func() {
		w := s.do("carol", http.MethodPost, "/registry/citizens", RegisterCitizenRequest{NationalIDHash: "   "})
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "validation_failed", s.errorCode(w))
	})
}

func (s *RegistryHandlerSuite) TestGrantAndBind() {
	s.Run("non-owner grant maps to 403", func() {
		w := s.do("alice", http.MethodPost, "/registry/officers/regional", GrantOfficerRequest{Identity: "officer-1"})
		assert.Equal(s.T(), http.StatusForbidden, w.Code)
		assert.Equal(s.T(), "not_owner", s.errorCode(w))
	})

	s.Run("owner grants and binds", func() {
		w := s.do(owner, http.MethodPost, "/registry/officers/regional", GrantOfficerRequest{Identity: "officer-1"})
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		w = s.do(owner, http.MethodPost, "/registry/regions", BindRegionRequest{RegionID: 7, Officer: "officer-1"})
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("binding lookup", func() {
		w := s.do("anyone", http.MethodGet, "/registry/regions/7", nil)
		require.Equal(s.T(), http.StatusOK, w.Code)
		var resp RegionBindingResponse
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), uint64(7), resp.RegionID)
		assert.Equal(s.T(), "officer-1", resp.Officer)
	})

	s.Run("unbound region maps to 404", func() {
		w := s.do("anyone", http.MethodGet, "/registry/regions/8", nil)
		assert.Equal(s.T(), http.StatusNotFound, w.Code)
	})

	s.Run("rebind maps to 409", func() {
		w := s.do(owner, http.MethodPost, "/registry/officers/regional", GrantOfficerRequest{Identity: "officer-2"})
		require.Equal(s.T(), http.StatusOK, w.Code)

		w = s.do(owner, http.MethodPost, "/registry/regions", BindRegionRequest{RegionID: 7, Officer: "officer-2"})
		assert.Equal(s.T(), http.StatusConflict, w.Code)
		assert.Equal(s.T(), "region_already_bound", s.errorCode(w))
	})
}
