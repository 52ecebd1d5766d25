package service

import (
	"promptito-be/internal/dto"
	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/i18n"
)

const defaultSuggestLimit = 8

type ICatalogService interface {
	Blocks(tr i18n.Translator, q *dto.CatalogQuery) []*dto.BlockResponse
	Suggest(tr i18n.Translator, q *dto.SuggestQuery) []*dto.BlockResponse
	Niches() []string
	Tools(tr i18n.Translator) []*dto.ToolResponse
	Structures(tr i18n.Translator) []*dto.StructureResponse
}

type catalogService struct {
	store *catalog.Store
}

func NewCatalogService(store *catalog.Store) ICatalogService {
	return &catalogService{store: store}
}

func blockResponses(blocks []catalog.Block, tr i18n.Translator) []*dto.BlockResponse {
	out := make([]*dto.BlockResponse, len(blocks))
	for i, b := range blocks {
		tags := b.Tags
		if tags == nil {
			tags = []string{}
		}
		out[i] = &dto.BlockResponse{
			Id:           b.ID,
			Title:        tr.T(b.TitleKey),
			Content:      tr.T(b.ContentKey),
			Niche:        b.Niche,
			Structure:    b.Structure,
			Level:        b.Level,
			Tags:         tags,
			Image:        b.Image,
			TargetColumn: string(b.TargetColumn),
		}
	}
	return out
}

func (s *catalogService) Blocks(tr i18n.Translator, q *dto.CatalogQuery) []*dto.BlockResponse {
	return blockResponses(s.store.Filter(catalog.Query{
		Search: q.Query,
		Niche:  q.Niche,
		Target: segment.ID(q.Target),
	}, tr), tr)
}

func (s *catalogService) Suggest(tr i18n.Translator, q *dto.SuggestQuery) []*dto.BlockResponse {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	return blockResponses(s.store.Suggest(q.Query, tr, limit), tr)
}

func (s *catalogService) Niches() []string {
	return s.store.Niches()
}

func (s *catalogService) Tools(tr i18n.Translator) []*dto.ToolResponse {
	tools := s.store.Tools()
	out := make([]*dto.ToolResponse, len(tools))
	for i, t := range tools {
		out[i] = &dto.ToolResponse{Id: t.ID, Name: tr.T(t.NameKey), Description: tr.T(t.DescriptionKey)}
	}
	return out
}

func (s *catalogService) Structures(tr i18n.Translator) []*dto.StructureResponse {
	structures := segment.Structures()
	out := make([]*dto.StructureResponse, len(structures))
	for i, st := range structures {
		segs := make([]dto.SegmentInfo, len(st.Sections))
		for j, id := range st.Sections {
			segs[j] = dto.SegmentInfo{Id: string(id), Label: segment.Label(id, tr), Placeholder: segment.Placeholder(id, tr)}
		}
		out[i] = &dto.StructureResponse{
			Id:       st.ID,
			Label:    segment.DisplayLabel(st.ID),
			Title:    tr.T(st.TitleKey),
			Segments: segs,
		}
	}
	return out
}
