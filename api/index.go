package api

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/JackalLabs/harvester/api/types"
	"github.com/JackalLabs/harvester/config"
	"github.com/JackalLabs/harvester/farm"
)

func IndexHandler(status Status, dryRun bool) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		types.WriteJSON(w, http.StatusOK, types.IndexResponse{
			Status:   "online",
			Accounts: status.Accounts(),
			DryRun:   dryRun,
		})
	}
}

func VersionHandler(head HeadSource) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
		defer cancel()

		info, ok := head.Info(ctx)
		if !ok {
			types.WriteError(w, http.StatusBadGateway, errors.New("no endpoint returned the chain head"))
			return
		}

		types.WriteJSON(w, http.StatusOK, types.VersionResponse{
			Version:    config.Version(),
			Commit:     config.Commit(),
			ChainID:    hex.EncodeToString(info.ChainID),
			HeadHeight: info.HeadBlockNum,
		})
	}
}

// AccountsHandler returns the last report of every account.
func AccountsHandler(status Status) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		reports := status.Reports()
		if reports == nil {
			reports = []farm.Report{}
		}
		types.WriteJSON(w, http.StatusOK, types.AccountsResponse{
			Reports:      reports,
			SkippedTicks: status.Skipped(),
		})
	}
}
