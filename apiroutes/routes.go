package apiroutes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/waxsealmail/go-waxseal-server/api"
	"github.com/waxsealmail/go-waxseal-server/api/interceptors"
	"github.com/waxsealmail/go-waxseal-server/global"
	"github.com/waxsealmail/go-waxseal-server/metrics"
	"github.com/waxsealmail/go-waxseal-server/repository"
	"github.com/waxsealmail/go-waxseal-server/services"
	"github.com/waxsealmail/go-waxseal-server/store"
	"github.com/waxsealmail/go-waxseal-server/types"
)

// REST API routes
func ConfigRoutes(router *gin.Engine, dbSelector *repository.CouchDBSelector, taskServer *asynq.Server, environment *types.Environment) *gin.Engine {
	// the composer is a browser app on a different origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("X-Waxseal-Session", "Authorization")
	router.Use(cors.New(corsConfig))

	// init metrics
	if global.Conf.Prometheus.Enabled {

		metrics.InitMetrics()

		authorized := router.Group("/metrics", gin.BasicAuth(gin.Accounts{
			global.Conf.Prometheus.Username: global.Conf.Prometheus.Password,
		}))

		authorized.GET("", gin.WrapH(promhttp.Handler()))
	}

	// SERVICE definitions
	sessionService := services.NewSessionService(dbSelector, store.NewMemoryLocalStore())
	campaignService := services.NewCampaignService(dbSelector, sessionService, environment)
	checkoutService := services.NewCheckoutService()
	sealService := services.NewSealService()

	// one campaign store per browser session. The local lane lives in
	// Redis keyed by session, so it outlives idle eviction and process
	// restarts and hydration can pick the draft back up.
	maxIdleDays := global.Conf.WaxSeal.SessionMaxIdleDays
	if maxIdleDays <= 0 {
		maxIdleDays = 30
	}
	snapshotTTL := time.Duration(maxIdleDays) * 24 * time.Hour

	storeManager := store.NewManager(func(sessionKey string) *store.CampaignStore {
		var local store.LocalStore = store.NewMemoryLocalStore()
		if environment.RedisClient != nil {
			local = store.NewRedisLocalStore(environment.RedisClient, "waxseal:session:"+sessionKey, snapshotTTL)
		}
		return store.NewCampaignStore(store.Options{
			Local:          local,
			Remote:         campaignService,
			AutosaveDelay:  time.Duration(global.Conf.WaxSeal.AutosaveDelayMs) * time.Millisecond,
			HydrationGrace: time.Duration(global.Conf.WaxSeal.HydrationGraceMs) * time.Millisecond,
			EditingPaths:   global.Conf.WaxSeal.EditingPaths,
		})
	})

	// API definitions
	campaignApi := api.NewCampaignApi(storeManager, campaignService, sessionService)
	addressApi := api.NewAddressApi(storeManager)
	letterApi := api.NewLetterApi(storeManager)
	orderApi := api.NewOrderApi(storeManager, checkoutService, sealService)

	rootApi := router.Group("/api", metrics.MetricsMiddleware(), interceptors.RateLimitMiddleware())
	{
		rootApi.GET("/v1/session", campaignApi.GetSession)

		rootApi.GET("/v1/campaign", campaignApi.GetCampaign)
		rootApi.PUT("/v1/campaign", campaignApi.UpdateCampaign)
		rootApi.DELETE("/v1/campaign", campaignApi.ResetCampaign)
		rootApi.PUT("/v1/campaign/location", campaignApi.SetLocation)

		rootApi.GET("/v1/campaigns", campaignApi.ListCampaigns)
		rootApi.POST("/v1/campaigns", campaignApi.CreateCampaign)
		rootApi.GET("/v1/campaigns/:id", campaignApi.GetCampaignByID)
		rootApi.PUT("/v1/campaigns/:id", campaignApi.UpdateCampaignByID)
		rootApi.DELETE("/v1/campaigns/:id", campaignApi.DeleteCampaign)
		rootApi.POST("/v1/campaigns/associate", campaignApi.AssociateCampaigns)

		rootApi.GET("/v1/addresses", addressApi.ListAddresses)
		rootApi.POST("/v1/addresses", addressApi.AddManual)
		rootApi.POST("/v1/addresses/import", addressApi.ImportCsv)
		rootApi.DELETE("/v1/addresses/:index", addressApi.RemoveAddress)

		rootApi.PUT("/v1/letter", letterApi.UpdateLetter)
		rootApi.GET("/v1/letter/preview", letterApi.PreviewLetter)

		rootApi.POST("/v1/checkout", orderApi.Checkout)
		rootApi.POST("/v1/seal", orderApi.GenerateSeal)
	}

	return router
}
