package types

// DefaultWithdrawFee is used when the game config table cannot be read.
const DefaultWithdrawFee = 5

// DefaultAnimalFood maps animal templates to the food template they consume.
var DefaultAnimalFood = map[uint64]uint64{
	298597: 298593, // Baby Calf eats Milk
	298603: 318606, // Cow eats Barley
	298607: 318606, // Dairy Cow eats Barley
	298613: 318606, // Chick eats Barley
	298614: 318606, // Chicken eats Barley
}

// Templates is the static game configuration loaded once at startup.
// It is never modified after NewTemplates returns.
type Templates struct {
	tools   map[uint64]ToolConfig
	animals map[uint64]AnimalConfig
	food    map[uint64]uint64
	fee     uint64
}

func NewTemplates(tools []ToolConfig, animals []AnimalConfig, cfg *GameConfig) *Templates {
	t := &Templates{
		tools:   make(map[uint64]ToolConfig, len(tools)),
		animals: make(map[uint64]AnimalConfig, len(animals)),
		food:    make(map[uint64]uint64, len(DefaultAnimalFood)),
		fee:     DefaultWithdrawFee,
	}

	for animal, food := range DefaultAnimalFood {
		t.food[animal] = food
	}

	for _, tc := range tools {
		t.tools[uint64(tc.TemplateID)] = tc
	}

	for _, ac := range animals {
		t.animals[uint64(ac.TemplateID)] = ac
		if ac.ConsumedCard != 0 {
			t.food[uint64(ac.TemplateID)] = uint64(ac.ConsumedCard)
		}
	}

	if cfg != nil && cfg.Fee > 0 {
		t.fee = uint64(cfg.Fee)
	}

	return t
}

func (t *Templates) Tool(templateID Uint64) (ToolConfig, bool) {
	if t == nil {
		return ToolConfig{}, false
	}
	c, ok := t.tools[uint64(templateID)]
	return c, ok
}

func (t *Templates) Animal(templateID Uint64) (AnimalConfig, bool) {
	if t == nil {
		return AnimalConfig{}, false
	}
	c, ok := t.animals[uint64(templateID)]
	return c, ok
}

// FoodFor returns the food template consumed by an animal template.
func (t *Templates) FoodFor(animalTemplate Uint64) (Uint64, bool) {
	if t == nil {
		f, ok := DefaultAnimalFood[uint64(animalTemplate)]
		return Uint64(f), ok
	}
	f, ok := t.food[uint64(animalTemplate)]
	return Uint64(f), ok
}

// FoodMap returns a copy of the animal to food template mapping.
func (t *Templates) FoodMap() map[Uint64]Uint64 {
	src := DefaultAnimalFood
	if t != nil {
		src = t.food
	}
	out := make(map[Uint64]Uint64, len(src))
	for k, v := range src {
		out[Uint64(k)] = Uint64(v)
	}
	return out
}

func (t *Templates) WithdrawFee() uint64 {
	if t == nil {
		return DefaultWithdrawFee
	}
	return t.fee
}

func (t *Templates) ToolCount() int {
	if t == nil {
		return 0
	}
	return len(t.tools)
}

func (t *Templates) AnimalCount() int {
	if t == nil {
		return 0
	}
	return len(t.animals)
}
