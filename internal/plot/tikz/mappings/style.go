package mappings

import "dirtybench/internal/strategy"

type PlotStyle struct {
	Color       string
	LineStyle   string
	LineWidth   string
	Mark        string
	MarkOptions string
}

var StrategyStyles = map[strategy.Strategy]PlotStyle{
	strategy.Uffd:              {Color: "blue", LineStyle: "solid", LineWidth: "thick", Mark: "square*", MarkOptions: "scale=0.6,fill=blue"},
	strategy.SoftDirty:         {Color: "red", LineStyle: "densely dashed", LineWidth: "thick", Mark: "triangle*", MarkOptions: "scale=0.7,fill=red"},
	strategy.EmulatedSoftDirty: {Color: "green!70!black", LineStyle: "densely dotted", LineWidth: "thick", Mark: "*", MarkOptions: "scale=0.6,fill=green!70!black"},
}

var fallbackStyle = PlotStyle{Color: "black", LineStyle: "solid", LineWidth: "thick", Mark: "o", MarkOptions: "scale=0.5"}

func GetStrategyStyle(s strategy.Strategy) PlotStyle {
	if style, ok := StrategyStyles[s]; ok {
		return style
	}
	return fallbackStyle
}

func (ps PlotStyle) ToTikzOptions() string {
	options := ps.Color
	if ps.LineStyle != "" {
		options += "," + ps.LineStyle
	}
	if ps.LineWidth != "" {
		options += "," + ps.LineWidth
	}
	if ps.Mark != "none" && ps.Mark != "" {
		options += ",mark=" + ps.Mark
		if ps.MarkOptions != "" {
			options += ",mark options={" + ps.MarkOptions + "}"
		}
	}
	options += ",error bars/.cd,y dir=both,y explicit"
	return options
}
