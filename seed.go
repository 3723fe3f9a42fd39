package main

import "context"

// First-run sample content shown before any editorial data exists.
var defaultHeritageItems = []HeritageItemPayload{
	{
		Title:       "전통 미술",
		Description: "민족의 영혼과 미학을 담은 조선의 전통 미술은 자연과의 조화, 세밀한 기법, 그리고 상징성이 풍부합니다.",
		ImageURL:    "https://images.unsplash.com/photo-1601564358117-31d550417227?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&h=400&q=80",
		Category:    "art",
	},
	{
		Title:       "전통 음악",
		Description: "독특한 선율과 리듬을 가진 조선의 음악은 국가적 자부심을 불러일으키는 문화적 보물입니다.",
		ImageURL:    "https://images.unsplash.com/photo-1540998694023-760ad93888a7?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&h=400&q=80",
		Category:    "music",
	},
	{
		Title:       "전통 공예",
		Description: "세대를 거쳐 전해진 공예 기술은 조선 장인들의 뛰어난 기술과 예술적 감각을 보여줍니다.",
		ImageURL:    "https://images.unsplash.com/photo-1580651315530-69c8e0026377?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&h=400&q=80",
		Category:    "craft",
	},
}

var defaultPromptTemplates = []PromptTemplatePayload{
	{
		Title:    "전통 건축 프롬프트",
		Text:     "조선의 전통 건축물, 웅장한 궁전, 아름다운 정원, 전통적인 목조 구조, 자연과의 조화, 세밀한 장식, 4K 해상도, 사실적 렌더링, 자연광",
		Category: "architecture",
	},
	{
		Title:    "현대 도시 프롬프트",
		Text:     "평양의 현대적 도시 경관, 웅장한 기념물, 넓은 광장, 현대적 건축물, 깨끗한 거리, 푸른 공원, 강변 풍경, 4K 해상도, 아침 햇살, 생동감 있는 색상",
		Category: "urban",
	},
	{
		Title:    "전통 문화 프롬프트",
		Text:     "조선의 전통 문화 행사, 화려한 민속 의상, 전통 춤, 음악 공연, 다채로운 색상, 우아한 움직임, 공동체 정신, 명절 축하, 4K 해상도, 사실적 스타일",
		Category: "culture",
	},
	{
		Title:    "자연 경관 프롬프트",
		Text:     "조선의 아름다운 자연 경관, 웅장한 산맥, 맑은 호수, 계절의 변화, 전통 가옥과 자연의 조화, 안개 낀 아침, 풍부한 식생, 평화로운 분위기, 높은 해상도, 사진같은 품질",
		Category: "nature",
	},
}

// seedContent inserts the sample content on first startup. Idempotent: a
// collection is only seeded while it is empty.
func (a *App) seedContent(ctx context.Context) error {
	items, err := a.store.ListHeritageItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		for _, payload := range defaultHeritageItems {
			if _, err := a.store.CreateHeritageItem(ctx, payload); err != nil {
				return err
			}
		}
		a.log.Info("seeded heritage items", "count", len(defaultHeritageItems))
	}

	templates, err := a.store.ListPromptTemplates(ctx)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		for _, payload := range defaultPromptTemplates {
			if _, err := a.store.CreatePromptTemplate(ctx, payload); err != nil {
				return err
			}
		}
		a.log.Info("seeded prompt templates", "count", len(defaultPromptTemplates))
	}

	return nil
}
