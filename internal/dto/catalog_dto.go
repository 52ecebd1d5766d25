package dto

type CatalogQuery struct {
	Query  string `query:"q"`
	Niche  string `query:"niche"`
	Target string `query:"target"`
}

type SuggestQuery struct {
	Query string `query:"q" validate:"required"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// BlockResponse is a catalog block with its text resolved for the request
// locale.
type BlockResponse struct {
	Id           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Niche        string   `json:"niche"`
	Structure    string   `json:"structure"`
	Level        string   `json:"level"`
	Tags         []string `json:"tags"`
	Image        string   `json:"image,omitempty"`
	TargetColumn string   `json:"targetColumn"`
}

type ToolResponse struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SegmentInfo struct {
	Id          string `json:"id"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

type StructureResponse struct {
	Id       string        `json:"id"`
	Label    string        `json:"label"`
	Title    string        `json:"title"`
	Segments []SegmentInfo `json:"segments"`
}
