package mocks

import (
	"github.com/JackalLabs/harvester/chain"
	"github.com/JackalLabs/harvester/farm"
)

//go:generate mockgen -destination=node.go -package=mocks . Node
//go:generate mockgen -destination=poster.go -package=mocks . Poster

type Node interface {
	chain.Node
}

type Poster interface {
	farm.Poster
}
