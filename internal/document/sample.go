package document

// SampleRecords returns the drawing new canvases are seeded with: one
// element of every kind.
func SampleRecords() []Record {
	return []Record{
		{
			ID: 0, Type: KindRectangle,
			X1: 80, Y1: 80, X2: 280, Y2: 230,
			StrokeColor: "#000000", BackgroundColor: "#e94560", StrokeWidth: 2,
		},
		{
			ID: 1, Type: KindCircle,
			X1: 480, Y1: 160, X2: 540, Y2: 160,
			StrokeColor: "#16213e", BackgroundColor: "#0f3460", StrokeWidth: 2,
		},
		{
			ID: 2, Type: KindDiamond,
			X1: 640, Y1: 80, X2: 800, Y2: 240,
			StrokeColor: "#2d6a4f", BackgroundColor: "#53d769", StrokeWidth: 2,
		},
		{
			ID: 3, Type: KindLine,
			X1: 80, Y1: 320, X2: 280, Y2: 420,
			StrokeColor: "#000000", BackgroundColor: "#ffffff", StrokeWidth: 2,
		},
		{
			ID: 4, Type: KindArrow,
			X1: 320, Y1: 420, X2: 520, Y2: 320,
			StrokeColor: "#c78400", StrokeWidth: 3,
		},
		{
			ID: 5, Type: KindPencil,
			Points: []Point{
				{X: 600, Y: 380}, {X: 620, Y: 360}, {X: 645, Y: 352},
				{X: 670, Y: 360}, {X: 690, Y: 385}, {X: 715, Y: 400},
			},
			StrokeColor: "#8b0ba8", StrokeWidth: 2,
		},
		{
			ID: 6, Type: KindText,
			X1: 80, Y1: 520, X2: 80, Y2: 520,
			Text:        "Sketchboard",
			StrokeColor: "#1a1a2e", FontSize: 32, FontFamily: FontArial,
		},
	}
}
