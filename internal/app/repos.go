package app

import (
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type Repos struct {
	User             repos.UserRepo
	Proposal         repos.ProposalRepo
	AiConfiguration  repos.AiConfigurationRepo
	GeneratedSection repos.GeneratedSectionRepo
	SectionHistory   repos.SectionHistoryRepo
	LibraryAsset     repos.LibraryAssetRepo
	AICallLog        repos.AICallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		Proposal:         repos.NewProposalRepo(db, log),
		AiConfiguration:  repos.NewAiConfigurationRepo(db, log),
		GeneratedSection: repos.NewGeneratedSectionRepo(db, log),
		SectionHistory:   repos.NewSectionHistoryRepo(db, log),
		LibraryAsset:     repos.NewLibraryAssetRepo(db, log),
		AICallLog:        repos.NewAICallLogRepo(db, log),
	}
}
