// Package screens maps state requests to the screen implementations.
package screens

import (
	"fmt"

	"github.com/younwookim/novel/internal/application/failure"
	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/scene/errorscreen"
	"github.com/younwookim/novel/internal/application/scene/mainmenu"
	"github.com/younwookim/novel/internal/application/scene/playing"
	"github.com/younwookim/novel/internal/application/scene/splash"
	"github.com/younwookim/novel/internal/application/state"
)

// Builder creates the screen for each state kind.
type Builder struct{}

// Initial returns the first screen of the application.
func (Builder) Initial(ctx *scene.Context) scene.Scene {
	return splash.New(ctx.Engine().SplashSeconds)
}

// Build creates the screen a request asks for. The Error screen needs a
// failure and is built with Error instead.
func (b Builder) Build(ctx *scene.Context, req *scene.Request) (scene.Scene, error) {
	switch req.Kind {
	case state.KindSplash:
		return b.Initial(ctx), nil
	case state.KindMainMenu:
		return mainmenu.New(ctx), nil
	case state.KindGame:
		if req.Resume {
			s, err := playing.Resume(ctx)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
		s, err := playing.New(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	case state.KindError:
		return nil, fmt.Errorf("error screen requested without a failure")
	default:
		return nil, fmt.Errorf("unknown state %d", int(req.Kind))
	}
}

// Error creates the Error screen for f.
func (Builder) Error(f *failure.Failure) scene.Scene {
	return errorscreen.New(f)
}
