package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/mindbloom/internal/adapters/storage/memory"
	"github.com/PabloGalante/mindbloom/internal/app/profile"
	"github.com/PabloGalante/mindbloom/internal/domain"
)

func TestPersonaDefaultsToZen(t *testing.T) {
	svc := profile.NewService(memory.NewProfileStore())

	p, err := svc.Persona(context.Background(), "new-user")
	require.NoError(t, err)
	assert.Equal(t, domain.PersonaZen, p)
}

func TestSetPersona(t *testing.T) {
	ctx := context.Background()
	svc := profile.NewService(memory.NewProfileStore())

	got, err := svc.SetPersona(ctx, "u", " listener ")
	require.NoError(t, err)
	assert.Equal(t, domain.PersonaListener, got)

	p, err := svc.Persona(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, domain.PersonaListener, p)
}

func TestSetPersonaRejectsUnknown(t *testing.T) {
	svc := profile.NewService(memory.NewProfileStore())

	_, err := svc.SetPersona(context.Background(), "u", "PIRATE")
	assert.ErrorIs(t, err, profile.ErrUnknownPersona)
}
