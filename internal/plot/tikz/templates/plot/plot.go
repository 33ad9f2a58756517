package templates

const PlotTemplate = `% Generated on {{.GeneratedDate}}
%
% Report: {{.ReportFile}}
% Configurations: {{.Configurations}}
% Panel: {{.Name}}
% Error bars: sample standard deviation
%
\begin{tikzpicture}
	\begin{axis}[
		% title={ {{.Title}} },
		xlabel={ {{.XLabel}} },
		ylabel={ {{.YLabel}} },
		width=\textwidth,
		height=0.6\textwidth,{{if .XLogBase}}
		xmode=log,
		log basis x={{.XLogBase}},
		log ticks with fixed point,{{end}}
		xtick={ {{.XTicks}} },
		ymin=0,
		ymajorgrids,
		grid style=dashed,
		legend columns=3,
		legend pos=north west,
	]

{{range .Plots}}
% Strategy: {{.Strategy}}
\addplot+[{{.Style}}]
  coordinates {
{{range .Coordinates}}    {{.}}
{{end}}  };
\addlegendentry{ {{.LegendEntry}} }

{{end}}
	\end{axis}
\end{tikzpicture}
`

type PlotData struct {
	GeneratedDate  string
	ReportFile     string
	Configurations int
	Name           string
	Title          string
	XLabel         string
	YLabel         string
	XLogBase       int
	XTicks         string
	Plots          []PlotSeries
}

type PlotSeries struct {
	Strategy    string
	Style       string
	LegendEntry string
	Coordinates []string
}
