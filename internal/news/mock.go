package news

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"
)

type newsTemplate struct {
	title   string
	content string
}

var wireServices = []string{
	"The Times", "Business Standard", "Economic Times", "Hindustan Times",
	"Indian Express", "Mint", "Reuters India", "PTI",
}

// MockSource fabricates entity-aware demo articles. Each Search call shuffles
// its template pool with the source's RNG, so a fixed seed gives a fixed
// result set.
type MockSource struct {
	rng *rand.Rand
	now func() time.Time
}

// NewMockSource seeds the source from the current time.
func NewMockSource() *MockSource {
	return NewSeededMockSource(time.Now().UnixNano())
}

// NewSeededMockSource builds a deterministic source for tests.
func NewSeededMockSource(seed int64) *MockSource {
	return &MockSource{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Search synthesizes up to maxResults articles about the entity, dated within
// the parsed time range. It never fails.
func (s *MockSource) Search(_ context.Context, entity, timeRange string, maxResults int) ([]Article, error) {
	slog.Info("searching news", "entity", entity)

	days := ParseTimeRange(timeRange)
	templates := templatesFor(entity)

	s.rng.Shuffle(len(templates), func(i, j int) {
		templates[i], templates[j] = templates[j], templates[i]
	})
	if maxResults < len(templates) {
		templates = templates[:maxResults]
	}

	articles := make([]Article, 0, len(templates))
	for i, t := range templates {
		published := s.now().AddDate(0, 0, -s.rng.Intn(days+1))
		articles = append(articles, Article{
			Title:         t.title,
			Content:       t.content,
			Source:        wireServices[s.rng.Intn(len(wireServices))],
			PublishedAt:   published,
			URL:           fmt.Sprintf("https://example.com/news-%d", i),
			SentimentHint: "neutral",
		})
	}

	slog.Info("found articles", "count", len(articles))
	return articles, nil
}

// templatesFor picks the template pool by entity class, checked in order:
// city, technology, finance, then general.
func templatesFor(entity string) []newsTemplate {
	lower := strings.ToLower(entity)

	switch {
	case containsAny(lower, "delhi", "mumbai", "bangalore", "chennai", "kolkata", "hyderabad", "pune", "ahmedabad"):
		city := entity
		if idx := strings.IndexByte(entity, ' '); idx > 0 {
			city = entity[:idx]
		}
		return cityTemplates(city)
	case containsAny(lower, "ai", "artificial intelligence", "tech", "technology", "startup", "software"):
		return techTemplates(entity)
	case containsAny(lower, "stock", "market", "finance", "investment", "trading"):
		return financeTemplates(entity)
	default:
		return generalTemplates(entity)
	}
}

func containsAny(lower string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func cityTemplates(city string) []newsTemplate {
	return []newsTemplate{
		{
			title:   fmt.Sprintf("%s Metro Expansion Project Reaches Major Milestone", city),
			content: fmt.Sprintf("The %s Metro Rail Corporation announced today that the new metro line extension has reached a significant construction milestone. The project, valued at over ₹15,000 crores, is expected to ease traffic congestion and provide sustainable transport options for millions of commuters. Officials stated the line will be operational by Q3 2026, connecting key commercial and residential areas across the city.", city),
		},
		{
			title:   fmt.Sprintf("%s Emerges as Leading Tech Hub with Record Startup Funding", city),
			content: fmt.Sprintf("In a significant development for the city's tech ecosystem, %s has witnessed record startup investments in 2025. According to recent reports, the city attracted over $2.5 billion in venture capital funding across 450+ startups. Industry leaders attribute this growth to improved infrastructure, skilled talent pool, and supportive government policies promoting innovation and entrepreneurship.", city),
		},
		{
			title:   fmt.Sprintf("Air Quality Concerns Prompt %s Government to Launch Clean Air Initiative", city),
			content: fmt.Sprintf("Responding to growing environmental concerns, the %s municipal authority has unveiled a comprehensive clean air action plan. The initiative includes restrictions on older vehicles, increased green cover, and promotion of electric vehicles. Environmental experts have welcomed the move, though some suggest more aggressive measures may be needed to achieve WHO air quality standards.", city),
		},
		{
			title:   fmt.Sprintf("%s Real Estate Market Shows Mixed Signals Amid Economic Shifts", city),
			content: fmt.Sprintf("The %s property market is experiencing diverse trends across different segments. While premium residential areas have seen price appreciation of 8-12%%, mid-range segments remain stable. Commercial real estate, particularly office spaces, faces challenges due to hybrid work models. Real estate analysts suggest the market is in a transitional phase adapting to post-pandemic realities.", city),
		},
		{
			title:   fmt.Sprintf("Major Infrastructure Project Announced: %s to Get New International Convention Center", city),
			content: fmt.Sprintf("The government has approved a state-of-the-art international convention center for %s, designed to boost business tourism and position the city as a global MICE destination. The ₹2,800 crore facility will feature world-class amenities and is expected to generate thousands of jobs while contributing significantly to the local economy through increased tourism and business events.", city),
		},
		{
			title:   fmt.Sprintf("%s Schools Adopt AI-Powered Learning Tools in Education Revolution", city),
			content: fmt.Sprintf("Educational institutions across %s are embracing artificial intelligence and adaptive learning technologies to enhance student outcomes. Over 200 schools have implemented AI-based personalized learning platforms, marking a significant shift in pedagogy. Educators report improved student engagement and learning outcomes, though concerns about digital divide and screen time persist among parent groups.", city),
		},
		{
			title:   fmt.Sprintf("Traffic Congestion Crisis: %s Explores Smart Mobility Solutions", city),
			content: fmt.Sprintf("With traffic congestion costing the city an estimated ₹1,500 crores annually in lost productivity, %s authorities are piloting smart traffic management systems powered by AI and IoT sensors. The initiative includes intelligent signal control, real-time traffic monitoring, and integrated public transport apps. Early results from pilot zones show 20-25%% improvement in traffic flow during peak hours.", city),
		},
		{
			title:   fmt.Sprintf("%s Healthcare Sector Sees Surge in Medical Tourism Revenue", city),
			content: fmt.Sprintf("Premium hospitals in %s reported a 40%% increase in international patient arrivals, establishing the city as a leading medical tourism destination. Specialties including cardiac care, orthopedics, and cosmetic surgery are attracting patients from across the globe. The sector's growth is attributed to world-class facilities, skilled doctors, and cost-effectiveness compared to Western countries.", city),
		},
		{
			title:   fmt.Sprintf("Cultural Revival: %s Heritage Sites Get Modern Makeover", city),
			content: fmt.Sprintf("In an effort to preserve history while embracing modernity, %s's heritage sites are undergoing restoration with state-of-the-art conservation techniques. The ₹500 crore project includes improved visitor facilities, digital guides, and enhanced security. Tourism department officials expect visitor numbers to increase by 60%% post-restoration, boosting local economy and cultural awareness.", city),
		},
		{
			title:   fmt.Sprintf("%s Grapples with Water Scarcity: New Reservoirs Planned", city),
			content: fmt.Sprintf("Addressing critical water supply concerns, the %s water board has proposed construction of three new reservoirs and rainwater harvesting infrastructure across the city. The ₹3,200 crore project aims to ensure water security for the growing population. However, environmentalists have raised concerns about ecological impact and called for emphasis on water conservation and recycling initiatives.", city),
		},
	}
}

func techTemplates(entity string) []newsTemplate {
	return []newsTemplate{
		{
			title:   fmt.Sprintf("%s: Breakthrough AI Model Achieves Human-Level Performance in Complex Tasks", entity),
			content: fmt.Sprintf("Researchers in the %s sector have unveiled a revolutionary AI system demonstrating unprecedented capabilities. The model shows remarkable proficiency in reasoning, creativity, and problem-solving, potentially transforming industries from healthcare to finance. Experts suggest this represents a significant leap forward, though ethical considerations and regulatory frameworks remain subjects of intense debate.", entity),
		},
		{
			title:   fmt.Sprintf("Major Investment Wave: %s Sector Attracts Record Funding", entity),
			content: fmt.Sprintf("The %s industry experienced its strongest quarter with $8.5 billion in investments across 300+ companies. Leading venture capital firms cite explosive growth potential and transformative applications driving funding decisions. However, analysts warn about market saturation and emphasize importance of sustainable business models over hype-driven valuations.", entity),
		},
		{
			title:   fmt.Sprintf("%s Faces Regulatory Scrutiny Over Data Privacy and Ethics", entity),
			content: fmt.Sprintf("Government authorities have launched investigations into %s practices regarding user data protection and algorithmic transparency. The probe follows widespread concerns about privacy violations and biased decision-making systems. Industry leaders call for balanced regulation that protects consumers while fostering innovation and technological advancement.", entity),
		},
	}
}

func financeTemplates(entity string) []newsTemplate {
	return []newsTemplate{
		{
			title:   fmt.Sprintf("%s Reaches All-Time High Amid Strong Quarterly Results", entity),
			content: fmt.Sprintf("Markets responded enthusiastically as %s reported exceptional quarterly performance, with revenues up 28%% year-over-year. The company exceeded analyst expectations across all key metrics, driving share prices to historic levels. Management attributed success to strategic initiatives, operational excellence, and favorable market conditions, while announcing plans for continued expansion.", entity),
		},
		{
			title:   fmt.Sprintf("Volatility Concerns: %s Experiences Correction After Sustained Rally", entity),
			content: fmt.Sprintf("After months of strong performance, %s faced a sharp correction as profit-taking and macroeconomic concerns weighed on investor sentiment. Analysts suggest the pullback is healthy consolidation rather than trend reversal, citing strong fundamentals. However, technical indicators show mixed signals, prompting cautious approach among institutional investors.", entity),
		},
		{
			title:   fmt.Sprintf("%s Analyst Consensus Shifts to Bullish on Growth Prospects", entity),
			content: fmt.Sprintf("Leading financial institutions have upgraded their outlook on %s, citing improved market positioning and execution capability. The revised forecasts project 35-40%% growth over next 18 months, supported by new product launches and market expansion. However, some analysts maintain reservations about valuation levels and competitive pressures in the sector.", entity),
		},
	}
}

func generalTemplates(entity string) []newsTemplate {
	return []newsTemplate{
		{
			title:   fmt.Sprintf("%s Announces Major Strategic Initiative for 2025-26", entity),
			content: fmt.Sprintf("In a significant development, %s has unveiled an ambitious strategic plan focusing on innovation, sustainability, and market expansion. The initiative involves substantial investments in research, technology, and talent acquisition. Industry experts suggest this positions %s favorably for future growth, though execution will be critical to realizing stated objectives.", entity, entity),
		},
		{
			title:   fmt.Sprintf("Expert Analysis: What's Next for %s in Evolving Landscape", entity),
			content: fmt.Sprintf("Industry analysts are closely examining %s's trajectory amid rapidly changing market dynamics. While opportunities for growth and innovation abound, challenges including regulatory changes, competitive pressures, and technological disruption require strategic navigation. Thought leaders emphasize importance of adaptability and forward-thinking leadership in current environment.", entity),
		},
		{
			title:   fmt.Sprintf("%s Launches Sustainability Program Addressing Climate Concerns", entity),
			content: fmt.Sprintf("Responding to growing environmental awareness, %s has committed to comprehensive sustainability initiatives including carbon neutrality targets and renewable energy adoption. The program has received positive reception from environmental groups, though some critics argue for more aggressive timelines and measurable accountability mechanisms to ensure meaningful environmental impact.", entity),
		},
	}
}
