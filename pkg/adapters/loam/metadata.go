package loam

// RuleMetadata represents the frontmatter of a rule document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type RuleMetadata struct {
	ID          string   `json:"id" mapstructure:"id"`
	If          []string `json:"if" mapstructure:"if"`
	Then        string   `json:"then" mapstructure:"then"`
	Explanation string   `json:"explanation" mapstructure:"explanation"`
}
