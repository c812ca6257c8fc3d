package room

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPitBoss_RegisterPlayer(t *testing.T) {
	a := assert.New(t)
	p := NewPitBoss()

	_, _, err := p.RegisterPlayer("  ")
	a.Equal(ErrScreenNameRequired, err)

	pl, id, err := p.RegisterPlayer("alice")
	a.NoError(err)
	a.NotEmpty(id)
	a.Equal("alice", pl.Public.Name)
	a.True(pl.Chips() > 0)

	_, _, err = p.RegisterPlayer("Alice")
	a.Equal(ErrScreenNameTaken, err)

	found, ok := p.Player(id)
	a.True(ok)
	a.Same(pl, found)

	_, ok = p.Player("bogus")
	a.False(ok)
}

func TestPitBoss_CreateTable(t *testing.T) {
	a := assert.New(t)
	p := NewPitBoss()

	tbl := p.CreateTable("High Rollers")
	a.Equal("High Rollers", tbl.Name())
	a.NotEmpty(tbl.ID())

	generated := p.CreateTable("")
	a.True(strings.Contains(generated.Name(), " "))

	found, ok := p.Table(tbl.ID())
	a.True(ok)
	a.Same(tbl, found)

	_, ok = p.Table("bogus")
	a.False(ok)

	a.Len(p.Tables(), 2)
}
