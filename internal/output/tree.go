package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Description alignment column
	descriptionColumn = 40
)

// TreeNode is a node of a rendered tree. Children render in slice order.
type TreeNode struct {
	Name        string
	Description string
	Children    []*TreeNode
}

// Add appends a child node and returns it.
func (n *TreeNode) Add(name, description string) *TreeNode {
	child := &TreeNode{Name: name, Description: description}
	n.Children = append(n.Children, child)
	return child
}

// RenderTree renders a tree with descriptions aligned at a fixed column.
func RenderTree(root *TreeNode, styles *Styles) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	renderNode(&sb, root, "", true, true, styles)
	return sb.String()
}

// renderNode recursively renders a tree node with proper indentation and styling.
func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool, styles *Styles) {
	var line string
	if isRoot {
		line = styles.Bold.Render(node.Name)
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}
		line = prefix + connector + node.Name
	}

	if node.Description != "" {
		padding := descriptionColumn - lipgloss.Width(line)
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + styles.Muted.Render(node.Description)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	for i, child := range node.Children {
		childPrefix := ""
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}
		renderNode(sb, child, childPrefix, false, i == len(node.Children)-1, styles)
	}
}
