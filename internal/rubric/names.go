package rubric

// Human-readable names for machine codes. Codes stay in JSON fields, map
// keys and comparisons; names are for CLI output and logs.

var areaNames = map[string]string{
	"PA01": "Rights of Women",
	"PA02": "Conflict Victims",
	"PA03": "Children and Youth",
	"PA04": "Economic Inclusion",
	"PA05": "Rural Development",
	"PA06": "Labor and Employment",
	"PA07": "Health and Social Protection",
	"PA08": "Education Access",
	"PA09": "Environmental Safeguards",
	"PA10": "Institutional Capacity",
}

var dimensionNames = map[string]string{
	"DIM01": "Diagnostic Quality",
	"DIM02": "Strategic Coherence",
	"DIM03": "Budget Alignment",
	"DIM04": "Results Framework",
	"DIM05": "Implementation Capacity",
	"DIM06": "Monitoring and Evaluation",
}

var clusterNames = map[string]string{
	"CL01": "Population Rights",
	"CL02": "Productive Development",
	"CL03": "Social Services",
	"CL04": "Sustainability and Governance",
}

// AreaName returns the human-readable name for a policy area id.
// Unknown ids are returned as-is.
func AreaName(id string) string {
	if n, ok := areaNames[id]; ok {
		return n
	}
	return id
}

// DimensionName returns the human-readable name for a dimension id.
func DimensionName(id string) string {
	if n, ok := dimensionNames[id]; ok {
		return n
	}
	return id
}

// ClusterName returns the human-readable name for a cluster id.
func ClusterName(id string) string {
	if n, ok := clusterNames[id]; ok {
		return n
	}
	return id
}
