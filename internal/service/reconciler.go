package service

import (
	"github.com/skarbek/treasury-server-go/internal/model"
)

// RosterRow is one parent of the campaign roster joined against their ledger
// record, if any. State is three-valued: a parent with no record is "absent",
// which is distinct from "pending".
type RosterRow struct {
	Parent       model.Parent        `json:"parent"`
	State        model.PaymentState  `json:"state"`
	Contribution *model.Contribution `json:"contribution,omitempty"`
}

// DashboardEntry is one open campaign on the parent's self-service view. A
// parent may submit exactly once per campaign: the action is offered only
// while no record exists.
type DashboardEntry struct {
	Campaign     model.Campaign      `json:"campaign"`
	State        model.PaymentState  `json:"state"`
	Contribution *model.Contribution `json:"contribution,omitempty"`
	CanSubmit    bool                `json:"canSubmit"`
}

// indexByParent maps parent id to its contribution record. Contributions for
// parents outside the directory are kept; the roster join simply skips them.
func indexByParent(contributions []model.Contribution) map[string]*model.Contribution {
	byParent := make(map[string]*model.Contribution, len(contributions))
	for i := range contributions {
		byParent[contributions[i].ParentID] = &contributions[i]
	}
	return byParent
}

// BuildRoster joins the campaign's parent directory against its contribution
// records, producing one row per parent in directory order.
func BuildRoster(parents []model.Parent, contributions []model.Contribution) []RosterRow {
	byParent := indexByParent(contributions)
	rows := make([]RosterRow, 0, len(parents))
	for _, p := range parents {
		c := byParent[p.ID]
		rows = append(rows, RosterRow{
			Parent:       p,
			State:        model.StateForContribution(c),
			Contribution: c,
		})
	}
	return rows
}

// UnpaidCount counts parents without a paid contribution. Parents with no
// record at all count as unpaid; scanning only the contribution list would
// miss them. With an empty directory the count degrades to the number of
// non-paid records, an approximation used only until the directory loads.
func UnpaidCount(parents []model.Parent, contributions []model.Contribution) int {
	if len(parents) == 0 {
		count := 0
		for _, c := range contributions {
			if c.Status != model.ContributionPaid {
				count++
			}
		}
		return count
	}

	byParent := indexByParent(contributions)
	count := 0
	for _, p := range parents {
		c := byParent[p.ID]
		if c == nil || c.Status != model.ContributionPaid {
			count++
		}
	}
	return count
}

// IsSettled reports whether every parent in the directory has a paid
// contribution. A settled campaign is hidden from the default admin list.
// With an empty directory: settled iff there is at least one record and all
// records are paid.
func IsSettled(parents []model.Parent, contributions []model.Contribution) bool {
	if len(parents) == 0 {
		if len(contributions) == 0 {
			return false
		}
		for _, c := range contributions {
			if c.Status != model.ContributionPaid {
				return false
			}
		}
		return true
	}
	return UnpaidCount(parents, contributions) == 0
}

// BuildDashboard joins one parent's contributions against the open campaigns.
func BuildDashboard(campaigns []model.Campaign, contributions []model.Contribution) []DashboardEntry {
	byCampaign := make(map[string]*model.Contribution, len(contributions))
	for i := range contributions {
		byCampaign[contributions[i].CampaignID] = &contributions[i]
	}

	entries := make([]DashboardEntry, 0, len(campaigns))
	for _, campaign := range campaigns {
		c := byCampaign[campaign.ID]
		state := model.StateForContribution(c)
		entries = append(entries, DashboardEntry{
			Campaign:     campaign,
			State:        state,
			Contribution: c,
			CanSubmit:    state == model.PaymentAbsent && !campaign.IsClosed,
		})
	}
	return entries
}
