package ddragon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/logging"
)

const (
	dataDragonURL = "https://ddragon.leagueoflegends.com"
	augmentsURL   = "https://raw.communitydragon.org/latest/cdragon/arena/en_us.json"
	locale        = "en_US"
	userAgent     = "league-stats/1.0 (+https://github.com/victorgomez09/league-stats)"
)

func resourceURL(version string, resource string) string {
	return fmt.Sprintf("%s/cdn/%s/data/%s/%s.json", dataDragonURL, version, locale, resource)
}

func (c *Catalog) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := c.nowFunc()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	logging.FromContext(ctx).InfoContext(ctx, "Static data request completed", "url", url, "status", resp.StatusCode, "duration", c.nowFunc().Sub(start).String())

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", &domain.UpstreamStatusError{StatusCode: resp.StatusCode}, url)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMalformedUpstreamData, err)
	}
	return nil
}

func (c *Catalog) fetchVersion(ctx context.Context) (string, error) {
	var versions []string
	if err := c.getJSON(ctx, dataDragonURL+"/api/versions.json", &versions); err != nil {
		return "", err
	}
	if len(versions) == 0 || versions[0] == "" {
		return "", fmt.Errorf("%w: empty version list", domain.ErrMalformedUpstreamData)
	}
	return versions[0], nil
}

type championResponse struct {
	Data map[string]struct {
		ID    string `json:"id"`
		Key   string `json:"key"`
		Name  string `json:"name"`
		Title string `json:"title"`
	} `json:"data"`
}

func (c *Catalog) fetchChampions(ctx context.Context, version string) (domain.Champions, error) {
	var response championResponse
	if err := c.getJSON(ctx, resourceURL(version, "champion"), &response); err != nil {
		return nil, err
	}

	champions := make(domain.Champions, len(response.Data))
	for _, champion := range response.Data {
		key, err := strconv.Atoi(champion.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: champion %s has key %q", domain.ErrMalformedUpstreamData, champion.ID, champion.Key)
		}
		champions[key] = domain.ChampionInfo{
			ID:    champion.ID,
			Key:   key,
			Name:  champion.Name,
			Title: champion.Title,
		}
	}
	return champions, nil
}

type itemResponse struct {
	Data map[string]struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Plaintext   string `json:"plaintext"`
		Gold        struct {
			Total int `json:"total"`
		} `json:"gold"`
	} `json:"data"`
}

func (c *Catalog) fetchItems(ctx context.Context, version string) (domain.Items, error) {
	var response itemResponse
	if err := c.getJSON(ctx, resourceURL(version, "item"), &response); err != nil {
		return nil, err
	}

	items := make(domain.Items, len(response.Data))
	for rawID, item := range response.Data {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return nil, fmt.Errorf("%w: item id %q", domain.ErrMalformedUpstreamData, rawID)
		}
		items[id] = domain.ItemInfo{
			ID:          id,
			Name:        item.Name,
			Description: domain.CleanText(item.Description),
			Plaintext:   domain.CleanText(item.Plaintext),
			Gold:        item.Gold.Total,
		}
	}
	return items, nil
}

type runeResponse struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Icon      string `json:"icon"`
	Name      string `json:"name"`
	ShortDesc string `json:"shortDesc"`
	LongDesc  string `json:"longDesc"`
}

type runeTreeResponse struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Icon  string `json:"icon"`
	Name  string `json:"name"`
	Slots []struct {
		Runes []runeResponse `json:"runes"`
	} `json:"slots"`
}

func (c *Catalog) fetchRunes(ctx context.Context, version string) (domain.Runes, error) {
	var response []runeTreeResponse
	if err := c.getJSON(ctx, resourceURL(version, "runesReforged"), &response); err != nil {
		return nil, err
	}

	trees := make(domain.Runes, 0, len(response))
	for _, tree := range response {
		slots := make([][]domain.RuneInfo, 0, len(tree.Slots))
		for _, slot := range tree.Slots {
			runes := make([]domain.RuneInfo, 0, len(slot.Runes))
			for _, info := range slot.Runes {
				runes = append(runes, domain.RuneInfo{
					ID:        info.ID,
					Key:       info.Key,
					Name:      info.Name,
					ShortDesc: domain.CleanText(info.ShortDesc),
					LongDesc:  domain.CleanText(info.LongDesc),
					Icon:      info.Icon,
				})
			}
			slots = append(slots, runes)
		}
		trees = append(trees, domain.RuneTree{
			ID:    tree.ID,
			Key:   tree.Key,
			Name:  tree.Name,
			Icon:  tree.Icon,
			Slots: slots,
		})
	}
	return trees, nil
}

type spellResponse struct {
	Data map[string]struct {
		ID          string `json:"id"`
		Key         string `json:"key"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"data"`
}

func (c *Catalog) fetchSpells(ctx context.Context, version string) (domain.Spells, error) {
	var response spellResponse
	if err := c.getJSON(ctx, resourceURL(version, "summoner"), &response); err != nil {
		return nil, err
	}

	spells := make(domain.Spells, len(response.Data))
	for _, spell := range response.Data {
		key, err := strconv.Atoi(spell.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: spell %s has key %q", domain.ErrMalformedUpstreamData, spell.ID, spell.Key)
		}
		spells[key] = domain.SpellInfo{
			ID:          spell.ID,
			Key:         key,
			Name:        spell.Name,
			Description: domain.CleanText(spell.Description),
		}
	}
	return spells, nil
}

type augmentResponse struct {
	Augments []struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Desc      string `json:"desc"`
		Rarity    int    `json:"rarity"`
		IconLarge string `json:"iconLarge"`
	} `json:"augments"`
}

// fetchAugments ignores version, the arena table is only published for the latest patch
func (c *Catalog) fetchAugments(ctx context.Context, version string) (domain.Augments, error) {
	var response augmentResponse
	if err := c.getJSON(ctx, augmentsURL, &response); err != nil {
		return nil, err
	}

	augments := make(domain.Augments, len(response.Augments))
	for _, augment := range response.Augments {
		augments[augment.ID] = domain.Augment{
			ID:          augment.ID,
			Name:        augment.Name,
			Description: domain.CleanText(augment.Desc),
			Rarity:      augment.Rarity,
			IconPath:    augment.IconLarge,
		}
	}
	return augments, nil
}
