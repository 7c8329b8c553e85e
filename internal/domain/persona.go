package domain

import "strings"

// Persona is the behavioral mode that shapes the tone of generated reflections.
type Persona string

const (
	PersonaZen        Persona = "ZEN"
	PersonaStrategist Persona = "STRATEGIST"
	PersonaListener   Persona = "LISTENER"
	PersonaCatalyst   Persona = "CATALYST"
)

// Personas lists every known persona in display order.
var Personas = []Persona{PersonaZen, PersonaStrategist, PersonaListener, PersonaCatalyst}

// ParsePersona resolves a stored or user supplied code. The boolean reports
// whether the code was recognized; unknown codes resolve to PersonaZen.
func ParsePersona(code string) (Persona, bool) {
	switch Persona(strings.ToUpper(strings.TrimSpace(code))) {
	case PersonaZen:
		return PersonaZen, true
	case PersonaStrategist:
		return PersonaStrategist, true
	case PersonaListener:
		return PersonaListener, true
	case PersonaCatalyst:
		return PersonaCatalyst, true
	default:
		return PersonaZen, false
	}
}

// Instructions returns the fixed instructional string for the persona.
func (p Persona) Instructions() string {
	switch p {
	case PersonaStrategist:
		return "PRACTICAL STRATEGIST: Focus on actionable steps, energy management, and clear goals."
	case PersonaListener:
		return "EMPATHETIC LISTENER: Focus on validation, emotional resonance, and kindness."
	case PersonaCatalyst:
		return "GROWTH CATALYST: Focus on long-term patterns, breakthroughs, and cognitive reframing."
	case PersonaZen:
		fallthrough
	default:
		return "ZEN GUIDE: Focus on mindfulness, breath, and the present moment. Be minimalist."
	}
}
