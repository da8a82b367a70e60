package metadata

import (
	"strings"

	"github.com/cxcsds/ahelpgen/internal/util/sets"
)

// The classification battery. Rules are tried in order; the first match wins.
// Membership lists come from the curated help contexts that predate this
// tool and are kept as explicit data rather than scattered conditionals.
var contextRules = []struct {
	context string
	names   sets.Set[string]
	match   func(name string) bool
}{
	{
		context: "confidence",
		names: sets.New("get_conf_results", "get_confidence_results",
			"get_conf_opt",
			"get_covar_results", "get_covar_opt",
			"get_proj_results", "get_proj_opt"),
	},
	{
		context: "methods",
		match:   func(name string) bool { return strings.HasPrefix(name, "get_method") },
	},
	{
		context: "fitting",
		names:   sets.New("fit_bkg", "get_fit_results"),
	},
	{
		context: "filtering",
		names:   sets.New("ignore2d_image", "notice2d_image"),
	},
	{
		context: "modeling",
		names: sets.New("get_bkg_model", "get_bkg_source",
			"get_model_pars", "get_model_type",
			"get_num_par_frozen", "get_num_par_thawed",
			"get_xsabund",
			"get_xscosmo",
			"get_xsxsect",
			"get_xsxset",
			"load_template_interpolator",
			"load_xstable_model",
			"get_xschatter", "set_xschatter",
			"set_bkg_full_model"),
	},
	{
		context: "statistics",
		names:   sets.New("get_sampler_name", "get_sampler_opt", "get_stat_name"),
	},
	{
		context: "plotting",
		match: func(name string) bool {
			return strings.HasPrefix(name, "plot_") || strings.Contains(name, "_plot")
		},
	},
	{
		context: "data",
		names: sets.New("create_arf", "create_rmf",
			"get_bkg_arf", "get_bkg_rmf",
			"load_ascii_with_errors",
			"resample_data"),
		match: func(name string) bool { return strings.HasPrefix(name, "group") },
	},
	{
		context: "utilities",
		names:   sets.New("multinormal_pdf", "multit_pdf"),
	},
	{
		context: "visualization",
		names: sets.New("get_data_contour", "get_data_contour_prefs",
			"get_data_image", "get_fit_contour",
			"get_kernel_contour", "get_kernel_image",
			"get_model_contour", "get_model_contour_prefs",
			"get_model_image",
			"get_psf_contour", "get_psf_image",
			"get_ratio_contour", "get_ratio_image",
			"get_resid_contour", "get_resid_image",
			"get_source_contour", "get_source_image"),
	},
	{
		context: "info",
		names:   sets.New("get_functions", "list_pileup_model_ids", "list_psf_ids"),
	},
	{
		context: "model",
		names:   sets.New("delete_pileup_model"),
	},
}

// Classify assigns a help context when none was supplied externally. Model
// components always classify as "models"; otherwise the rule battery is
// consulted in order and ContextUnclassified is the fallback.
func Classify(name string, isModel bool) string {
	if isModel {
		return "models"
	}

	for _, rule := range contextRules {
		if rule.names != nil && rule.names.Has(name) {
			return rule.context
		}
		if rule.match != nil && rule.match(name) {
			return rule.context
		}
	}
	return ContextUnclassified
}
