package sheet

// GroupFixtures lists the match each group guess line targets, by line index.
var GroupFixtures = [...]string{
	"Alemania-Escocia", "Hungría-Suiza", "España-Croacia", "Italia-Albania",
	"Eslovenia-Dinamarca", "Serbia-Inglaterra", "Polonia-Países Bajos", "Austria-Francia",
	"Rumanía-Ucrania", "Bélgica-Eslovaquia", "Turquía-Georgia", "Portugal-República Checa",
	"Alemania-Hungría", "Escocia-Suiza", "Croacia-Albania", "España-Italia",
	"Eslovenia-Serbia", "Dinamarca-Inglaterra", "Polonia-Austria", "Países Bajos-Francia",
	"Eslovaquia-Ucrania", "Bélgica-Rumanía", "Georgia-República Checa", "Turquía-Portugal",
	"Suiza-Alemania", "Escocia-Hungría", "Albania-España", "Croacia-Italia",
	"Inglaterra-Eslovenia", "Dinamarca-Serbia", "Países Bajos-Austria", "Francia-Polonia",
	"Eslovaquia-Rumanía", "Ucrania-Bélgica", "Georgia-Portugal", "República Checa-Turquía",
}

var fixtureIndex = func() map[string]int {
	idx := make(map[string]int, len(GroupFixtures))
	for i, key := range GroupFixtures {
		idx[key] = i
	}
	return idx
}()

// FixtureIndex returns the guess line index of a group match key.
func FixtureIndex(key string) (int, bool) {
	i, ok := fixtureIndex[key]
	return i, ok
}
