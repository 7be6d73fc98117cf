package handlers

import (
	"github.com/rs/zerolog"

	"github.com/imanrao90/doctor-appointment-backend/internal/config"
	"github.com/imanrao90/doctor-appointment-backend/internal/imagestore"
	"github.com/imanrao90/doctor-appointment-backend/internal/scheduling"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
)

// Handler carries the collaborators every route needs: the scheduling
// service, the persistence gateway for auth lookups, the image store and the
// runtime config.
type Handler struct {
	Svc    *scheduling.Service
	Stores *store.Stores
	Images imagestore.Store
	Cfg    *config.Config
	Log    zerolog.Logger
}

func NewHandler(svc *scheduling.Service, stores *store.Stores, images imagestore.Store, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		Svc:    svc,
		Stores: stores,
		Images: images,
		Cfg:    cfg,
		Log:    log,
	}
}
