package container

import (
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

func ShortenerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Allocator, error) {
		opts := do.MustInvoke[*Options](i)

		repo, err := do.Invoke[shortener.Repository](i)
		if err != nil {
			return nil, err
		}

		gen, err := shortener.NewCodeGenerator(opts.CodeLength)
		if err != nil {
			return nil, err
		}

		return shortener.NewAllocator(repo, gen), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Resolver, error) {
		repo, err := do.Invoke[shortener.Repository](i)
		if err != nil {
			return nil, err
		}

		clicks, err := do.Invoke[shortener.ClickRecorder](i)
		if err != nil {
			return nil, err
		}

		return shortener.NewResolver(repo, clicks, do.MustInvoke[*zap.Logger](i)), nil
	})
}
