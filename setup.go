package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/waxsealmail/go-waxseal-server/global"
	"github.com/waxsealmail/go-waxseal-server/repository"
	"github.com/waxsealmail/go-waxseal-server/services"
	"github.com/waxsealmail/go-waxseal-server/store"
	"github.com/waxsealmail/go-waxseal-server/types"
)

// Configure DB Repositories and create DB Selector
func ConfigDBSelector() repository.DBSelector {
	// configure Repository (couchDB)
	repoUrl := global.Conf.CouchDB.Scheme + "://" + global.Conf.CouchDB.Host + ":" + strconv.Itoa(global.Conf.CouchDB.Port)
	campaignRepo, campaignRepoErr := repository.NewCouchDBRepository(repoUrl, repository.Campaign, global.Conf.CouchDB.Username, global.Conf.CouchDB.Password, false)
	sessionRepo, sessionRepoErr := repository.NewCouchDBRepository(repoUrl, repository.Session, global.Conf.CouchDB.Username, global.Conf.CouchDB.Password, false)

	repoErr := errors.Join(campaignRepoErr, sessionRepoErr)
	if repoErr != nil {
		global.Logger.Log("error", "Failed to create repositories", "error", repoErr.Error())
		panic(repoErr)
	}

	// REPOSITORY definitions
	dbSelector := repository.NewCouchDBSelector()
	dbSelector.AddDB(campaignRepo)
	dbSelector.AddDB(sessionRepo)

	return dbSelector
}

func ConfigDBIndexing(dbSelector *repository.CouchDBSelector, environment *types.Environment) {
	// CREATE REQUIRED SERVICES
	sessionService := services.NewSessionService(dbSelector, store.NewMemoryLocalStore())

	// Create INDEXES
	campaignRepo, cErr := dbSelector.ChooseDB(repository.Campaign)
	if cErr != nil {
		panic(cErr)
	}
	sessionRepo, sErr := dbSelector.ChooseDB(repository.Session)
	if sErr != nil {
		panic(sErr)
	}

	// CAMPAIGN INDEXES
	if err := repository.CreateCampaignSessionUserIndex(campaignRepo); err != nil {
		panic(err)
	}
	if err := repository.CreateCampaignStatusIndex(campaignRepo); err != nil {
		panic(err)
	}

	// SESSION INDEXES
	if err := repository.CreateSessionLastAccessedIndex(sessionRepo); err != nil {
		panic(err)
	}

	// cron jobs
	sweepFrequency := global.Conf.WaxSeal.SessionSweepFrequency
	if sweepFrequency == "" {
		sweepFrequency = "@every 12h"
	}
	environment.Cron.AddFunc(sweepFrequency, sessionService.RemoveStaleSessions)
	environment.Cron.Start()
	go sessionService.RemoveStaleSessions() // run once on startup
}

func ConfigS3Storage(conf *global.Config, env *types.Environment) {
	// configure S3 storage
	credentials := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(conf.Storage.Key, conf.Storage.Secret, ""))
	awsConf, err := config.LoadDefaultConfig(context.TODO(), config.WithCredentialsProvider(credentials), config.WithRegion(conf.Storage.Region))
	if err != nil {
		panic(err)
	}
	s3Client := s3.NewFromConfig(awsConf)
	uploader := manager.NewUploader(s3Client)
	downloader := manager.NewDownloader(s3Client)
	env.AddS3Uploader(uploader)
	env.AddS3Downloader(downloader)

	env.S3Client = s3Client
	env.S3PresignClient = s3.NewPresignClient(s3Client)
}
