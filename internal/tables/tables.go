// Package tables builds the result tables shown by the listing and
// lifecycle commands.
package tables

import (
	"strconv"
	"strings"

	"github.com/maasutil/maascli/internal/domain"
	"github.com/maasutil/maascli/internal/render"
)

func Profiles(profiles []domain.Profile) render.Table {
	rows := make([][]string, 0, len(profiles))
	for _, profile := range profiles {
		access := "authenticated"
		if profile.Anonymous() {
			access = "anonymous"
		}
		rows = append(rows, []string{profile.Name, profile.URL, access})
	}

	return render.Table{
		Columns: []render.Column{
			{Title: "Profile", Key: "name"},
			{Title: "URL", Key: "url"},
			{Title: "Access", Key: "access"},
		},
		Rows: rows,
	}
}

func Nodes(nodes []domain.Node) render.Table {
	rows := make([][]string, 0, len(nodes))
	for _, node := range nodes {
		rows = append(rows, []string{
			node.Hostname,
			node.SystemID,
			node.Architecture,
			strconv.Itoa(node.CPUs),
			strconv.FormatFloat(node.Memory, 'f', -1, 64),
			node.Status,
			node.Owner,
			strings.Join(node.Tags, " "),
		})
	}

	return render.Table{
		Columns: []render.Column{
			{Title: "Hostname", Key: "hostname"},
			{Title: "System ID", Key: "system_id"},
			{Title: "Architecture", Key: "architecture"},
			{Title: "CPUs", Key: "cpus"},
			{Title: "Memory", Key: "memory"},
			{Title: "Status", Key: "status"},
			{Title: "Owner", Key: "owner"},
			{Title: "Tags", Key: "tags"},
		},
		Rows: rows,
	}
}

func Tags(tags []domain.Tag) render.Table {
	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, []string{tag.Name, tag.Definition, tag.Comment})
	}

	return render.Table{
		Columns: []render.Column{
			{Title: "Tag", Key: "name"},
			{Title: "Definition", Key: "definition"},
			{Title: "Comment", Key: "comment"},
		},
		Rows: rows,
	}
}

func Files(files []domain.File) render.Table {
	rows := make([][]string, 0, len(files))
	for _, file := range files {
		rows = append(rows, []string{file.Filename, file.AnonURI})
	}

	return render.Table{
		Columns: []render.Column{
			{Title: "Filename", Key: "filename"},
			{Title: "URI", Key: "uri"},
		},
		Rows: rows,
	}
}

func Users(users []domain.User) render.Table {
	rows := make([][]string, 0, len(users))
	for _, user := range users {
		admin := "no"
		if user.IsAdmin {
			admin = "yes"
		}
		rows = append(rows, []string{user.Username, user.Email, admin})
	}

	return render.Table{
		Columns: []render.Column{
			{Title: "Username", Key: "username"},
			{Title: "Email", Key: "email"},
			{Title: "Admin", Key: "admin"},
		},
		Rows: rows,
	}
}
