package services

import (
	"github.com/ghuser/familyhub/pkg/app"
	pkgcache "github.com/ghuser/familyhub/pkg/cache"
	"github.com/ghuser/familyhub/services/family/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Family *FamilyService
}

// New wires all family application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	families := postgres.NewFamilyRepository(a.Db)
	members := postgres.NewMemberRepository(a.Db)

	var membersCache *pkgcache.MembersCache
	if a.Redis != nil {
		membersCache = pkgcache.NewMembersCache(a.Redis)
	}

	return &Services{
		Family: NewFamilyService(families, members, a.Tokens, membersCache, a.Config.MaxFamilyMembers),
	}
}
