package sheet_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/okian/porra/internal/domain/model"
	"github.com/okian/porra/internal/domain/sheet"
	"github.com/okian/porra/internal/domain/sheet/sheettest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseGuess(t *testing.T) {
	Convey("Given guess lines", t, func() {
		Convey("When the line is complete", func() {
			g, err := sheet.ParseGuess("Alemania-Escocia·Grupo A|2-0", sheet.DefaultFormat)

			So(err, ShouldBeNil)
			So(g.Key, ShouldEqual, "Alemania-Escocia")
			So(g.Label, ShouldEqual, "Grupo A")
			So(g.Score, ShouldResemble, model.Score{Home: 2, Away: 0})
		})

		Convey("When the label is missing", func() {
			g, err := sheet.ParseGuess("Suiza-Italia|1-1", sheet.DefaultFormat)

			So(err, ShouldBeNil)
			So(g.Key, ShouldEqual, "Suiza-Italia")
			So(g.Label, ShouldBeEmpty)
		})

		Convey("When the line is malformed", func() {
			for _, bad := range []string{
				"Alemania-Escocia·Grupo A 2-0",
				"Alemania-Escocia·Grupo A|dos-cero",
				"Alemania-Escocia·Grupo A|2",
				"|2-0",
			} {
				_, err := sheet.ParseGuess(bad, sheet.DefaultFormat)
				So(errors.Is(err, sheet.ErrMalformedGuess), ShouldBeTrue)
			}
		})

		Convey("When a custom format is used", func() {
			g, err := sheet.ParseGuess("España-Italia;J2=1:0", sheet.Format{Label: ";", Score: "=", Goals: ":"})

			So(err, ShouldBeNil)
			So(g.Key, ShouldEqual, "España-Italia")
			So(g.Label, ShouldEqual, "J2")
			So(g.Score, ShouldResemble, model.Score{Home: 1, Away: 0})
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a complete pre-tournament sheet", t, func() {
		s := sheettest.New(sheet.PreTournament).
			Group("Alemania-Escocia", 3, 0).
			Group("República Checa-Turquía", 1, 2).
			Teams(sheet.FieldRoundOf16, "Alemania", "Suiza", "España", "Italia").
			Teams(sheet.FieldQuarterFinals, "Alemania", "España").
			Teams(sheet.FieldSemiFinals, "España", "Francia").
			Teams(sheet.FieldFinalists, "España", "Francia").
			Knockout(sheet.FieldRoundOf16Guesses, []string{"Suiza-Italia"}, [2]int{1, 0}).
			Champion("España")

		pred := s.Parse("Ana")

		Convey("Then every field decodes", func() {
			So(pred.Name, ShouldEqual, "Ana")
			So(pred.Schema, ShouldEqual, "pre_tournament")
			So(pred.Lines, ShouldEqual, 107)
			So(len(pred.Group), ShouldEqual, 36)

			first, ok := pred.GroupGuess("Alemania-Escocia")
			So(ok, ShouldBeTrue)
			So(first.Err, ShouldBeNil)
			So(first.Guess.Score, ShouldResemble, model.Score{Home: 3, Away: 0})

			last, ok := pred.GroupGuess("República Checa-Turquía")
			So(ok, ShouldBeTrue)
			So(last.Guess.Score, ShouldResemble, model.Score{Home: 1, Away: 2})

			_, ok = pred.GroupGuess("Escocia-Alemania")
			So(ok, ShouldBeFalse)

			So(pred.Advancers[model.StageRoundOf16].Has("Suiza"), ShouldBeTrue)
			So(len(pred.Advancers[model.StageRoundOf16].Names), ShouldEqual, 16)
			So(pred.Advancers[model.StageQuarterFinal].Has("España"), ShouldBeTrue)
			So(pred.Finalists().Names, ShouldResemble, []string{"España", "Francia"})
			So(pred.Champion.Name, ShouldEqual, "España")
			So(pred.Champion.Err, ShouldBeNil)

			r16 := pred.Knockout[model.StageRoundOf16]
			So(len(r16), ShouldEqual, 8)
			So(r16[0].Guess.Key, ShouldEqual, "Suiza-Italia")
			So(r16[0].Guess.Score, ShouldResemble, model.Score{Home: 1, Away: 0})
			So(errors.Is(r16[1].Err, sheet.ErrMalformedGuess), ShouldBeTrue)
		})
	})

	Convey("Given a sheet with blank lines and padding", t, func() {
		s := sheettest.New(sheet.Knockout).Group("Hungría-Suiza", 1, 3).Champion("Inglaterra")
		raw := strings.Split(s.Text(), "\n")
		for i := range raw {
			raw[i] = "   " + raw[i] + "\t"
		}

		pred := sheet.NewParser(sheet.Knockout).Parse("Luis", raw)

		Convey("Then blank lines do not shift the offsets", func() {
			So(pred.Lines, ShouldEqual, 106)
			g, _ := pred.GroupGuess("Hungría-Suiza")
			So(g.Guess.Score, ShouldResemble, model.Score{Home: 1, Away: 3})
			So(pred.Champion.Name, ShouldEqual, "Inglaterra")
		})
	})

	Convey("Given one malformed group line", t, func() {
		s := sheettest.New(sheet.PreTournament).
			Group("Alemania-Escocia", 2, 1).
			Set(1, "Hungría-Suiza·Grupo A|x-1")

		pred := s.Parse("Eva")

		Convey("Then only that guess fails", func() {
			bad, _ := pred.GroupGuess("Hungría-Suiza")
			So(errors.Is(bad.Err, sheet.ErrMalformedGuess), ShouldBeTrue)
			good, _ := pred.GroupGuess("Alemania-Escocia")
			So(good.Err, ShouldBeNil)
			for i, g := range pred.Group {
				if i != 1 {
					So(g.Err, ShouldBeNil)
				}
			}
		})
	})

	Convey("Given a sheet shorter than its schema", t, func() {
		pred := sheettest.New(sheet.PreTournament).Truncate(90).Parse("Corto")

		Convey("Then only the fields past the end are missing", func() {
			for _, g := range pred.Group {
				So(g.Err, ShouldBeNil)
			}
			So(pred.Advancers[model.StageRoundOf16].Err, ShouldBeNil)
			So(errors.Is(pred.Advancers[model.StageQuarterFinal].Err, sheet.ErrMissingField), ShouldBeTrue)
			So(errors.Is(pred.Advancers[model.StageSemiFinal].Err, sheet.ErrMissingField), ShouldBeTrue)
			So(errors.Is(pred.Finalists().Err, sheet.ErrMissingField), ShouldBeTrue)
			So(errors.Is(pred.Champion.Err, sheet.ErrMissingField), ShouldBeTrue)
			So(pred.Finalists().Has("España"), ShouldBeFalse)
		})
	})

	Convey("Given a sheet cut inside the group guesses", t, func() {
		pred := sheettest.New(sheet.PreTournament).Truncate(10).Parse("Mini")

		So(pred.Group[9].Err, ShouldBeNil)
		So(errors.Is(pred.Group[10].Err, sheet.ErrMissingField), ShouldBeTrue)
		So(len(pred.Group), ShouldEqual, 36)
	})

	Convey("Given team lines with a label prefix", t, func() {
		pred := sheettest.New(sheet.PreTournament).
			Teams(sheet.FieldFinalists, "Final 1·España", "Final 2· Francia").
			Parse("Eti")

		So(pred.Finalists().Names, ShouldResemble, []string{"España", "Francia"})
	})
}

func TestSchema(t *testing.T) {
	Convey("Given the builtin schemas", t, func() {
		So(sheet.PreTournament.Validate(), ShouldBeNil)
		So(sheet.Knockout.Validate(), ShouldBeNil)

		reg, err := sheet.NewRegistry()
		So(err, ShouldBeNil)
		So(reg.Names(), ShouldResemble, []string{"knockout", "pre_tournament"})

		s, err := reg.Get("knockout")
		So(err, ShouldBeNil)
		So(s.Lines, ShouldEqual, 106)

		_, err = reg.Get("mundial")
		So(errors.Is(err, sheet.ErrUnknownSchema), ShouldBeTrue)
	})

	Convey("Given custom schemas", t, func() {
		base := func() sheet.Schema {
			w := make(map[sheet.Field]sheet.Window, len(sheet.Knockout.Windows))
			for k, v := range sheet.Knockout.Windows {
				w[k] = v
			}
			return sheet.Schema{Name: "custom", Lines: 106, Format: sheet.DefaultFormat, Windows: w}
		}

		Convey("When it is valid it registers", func() {
			reg, err := sheet.NewRegistry(base())
			So(err, ShouldBeNil)
			_, err = reg.Get("custom")
			So(err, ShouldBeNil)
		})

		Convey("When a required field is missing", func() {
			s := base()
			delete(s.Windows, sheet.FieldChampion)
			So(errors.Is(s.Validate(), sheet.ErrInvalidSchema), ShouldBeTrue)
		})

		Convey("When a window has the wrong width", func() {
			s := base()
			s.Windows[sheet.FieldSemiFinals] = sheet.Window{Offset: 96, Width: 3}
			So(errors.Is(s.Validate(), sheet.ErrInvalidSchema), ShouldBeTrue)
		})

		Convey("When a window ends past the sheet", func() {
			s := base()
			s.Windows[sheet.FieldChampion] = sheet.Window{Offset: 106, Width: 1}
			_, err := sheet.NewRegistry(s)
			So(errors.Is(err, sheet.ErrInvalidSchema), ShouldBeTrue)
		})

		Convey("When a field is unknown", func() {
			s := base()
			s.Windows["top_scorer"] = sheet.Window{Offset: 1, Width: 1}
			So(errors.Is(s.Validate(), sheet.ErrInvalidSchema), ShouldBeTrue)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a directory of sheets", t, func() {
		text := sheettest.New(sheet.PreTournament).Champion("España").Text()
		fsys := fstest.MapFS{
			"pedro.txt":          {Data: []byte(text)},
			"ana maría.txt":      {Data: []byte(text)},
			"notas.md":           {Data: []byte("no es una porra")},
			"archivo/luis.txt":   {Data: []byte(text)},
			"juan.backup.txt":    {Data: []byte(text)},
			"subdir.txt/dummy.x": {Data: []byte("x")},
		}
		p := sheet.NewParser(sheet.PreTournament)

		Convey("When loading the top level", func() {
			preds, err := sheet.LoadFS(context.Background(), fsys, "*.txt", p)

			Convey("Then files load in name order with title-cased names", func() {
				So(err, ShouldBeNil)
				names := make([]string, len(preds))
				for i, pr := range preds {
					names[i] = pr.Name
				}
				So(names, ShouldResemble, []string{"Ana María", "Juan", "Pedro"})
				So(preds[0].Champion.Name, ShouldEqual, "España")
			})
		})

		Convey("When loading recursively", func() {
			preds, err := sheet.LoadFS(context.Background(), fsys, "**/*.txt", p)

			So(err, ShouldBeNil)
			So(len(preds), ShouldEqual, 4)
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := sheet.LoadFS(ctx, fsys, "*.txt", p)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given a copy that sorts before the plain sheet of the same name", t, func() {
		plain := sheettest.New(sheet.PreTournament).Champion("España").Text()
		copied := sheettest.New(sheet.PreTournament).Champion("Italia").Text()
		fsys := fstest.MapFS{
			"ana.copia.txt": {Data: []byte(copied)},
			"ana.txt":       {Data: []byte(plain)},
			"anabel.txt":    {Data: []byte(copied)},
		}
		preds, err := sheet.LoadFS(context.Background(), fsys, "*.txt", sheet.NewParser(sheet.PreTournament))

		Convey("Then the plain sheet is read first", func() {
			So(err, ShouldBeNil)
			So(len(preds), ShouldEqual, 3)
			So(preds[0].Name, ShouldEqual, "Ana")
			So(preds[0].Champion.Name, ShouldEqual, "España")
			So(preds[1].Name, ShouldEqual, "Ana")
			So(preds[1].Champion.Name, ShouldEqual, "Italia")
			So(preds[2].Name, ShouldEqual, "Anabel")
		})
	})

	Convey("Given a missing directory", t, func() {
		_, err := sheet.LoadDir(context.Background(), "/definitely/not/here", "*.txt", sheet.NewParser(sheet.Knockout))
		So(err, ShouldNotBeNil)
	})

	Convey("Given file names", t, func() {
		So(sheet.DisplayName("predictions/josé luis.txt"), ShouldEqual, "José Luis")
		So(sheet.DisplayName("MARTA.txt"), ShouldEqual, "Marta")
		So(sheet.DisplayName("juan.backup.txt"), ShouldEqual, "Juan")
	})
}
