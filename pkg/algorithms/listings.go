package algorithms

import "github.com/dd0wney/cluso-algoviz/pkg/trace"

func listing(name string, lines ...string) trace.Listing {
	return trace.Listing{Name: name, Lines: lines}
}

// Sorting listings.
var (
	BubbleSortListing = listing("bubbleSort",
		"procedure bubbleSort(A)",
		"  n := length(A)",
		"  for i := 0 to n-2",
		"    for j := 0 to n-i-2",
		"      if A[j] > A[j+1]",
		"        swap(A[j], A[j+1])",
		"    mark A[n-i-1] sorted",
		"  mark A[0] sorted",
	)
	SelectionSortListing = listing("selectionSort",
		"procedure selectionSort(A)",
		"  for i := 0 to n-2",
		"    min := i",
		"    for j := i+1 to n-1",
		"      if A[j] < A[min]",
		"        min := j",
		"    swap(A[i], A[min])",
		"    mark A[i] sorted",
		"  mark A[n-1] sorted",
	)
	InsertionSortListing = listing("insertionSort",
		"procedure insertionSort(A)",
		"  mark A[0] sorted",
		"  for i := 1 to n-1",
		"    key := A[i]",
		"    j := i-1",
		"    while j >= 0 and A[j] > key",
		"      A[j+1] := A[j]",
		"      j := j-1",
		"    A[j+1] := key",
	)
	MergeSortListing = listing("mergeSort",
		"procedure mergeSort(A, lo, hi)",
		"  if lo >= hi: return",
		"  mid := (lo+hi)/2",
		"  mergeSort(A, lo, mid)",
		"  mergeSort(A, mid+1, hi)",
		"  merge(A, lo, mid, hi)",
		"procedure merge(A, lo, mid, hi)",
		"  L := A[lo..mid]; R := A[mid+1..hi]",
		"  while L and R are not empty",
		"    if L[0] <= R[0]: take L[0]",
		"    else: take R[0]",
		"  copy the rest of L and R",
	)
	QuickSortListing = listing("quickSort",
		"procedure quickSort(A, lo, hi)",
		"  if lo < hi",
		"    p := partition(A, lo, hi)",
		"    quickSort(A, lo, p-1)",
		"    quickSort(A, p+1, hi)",
		"procedure partition(A, lo, hi)",
		"  pivot := A[hi]",
		"  i := lo-1",
		"  for j := lo to hi-1",
		"    if A[j] < pivot",
		"      i := i+1; swap(A[i], A[j])",
		"  swap(A[i+1], A[hi])",
		"  return i+1",
	)
	HeapSortListing = listing("heapSort",
		"procedure heapSort(A)",
		"  for i := n/2-1 downto 0",
		"    heapify(A, n, i)",
		"  for i := n-1 downto 1",
		"    swap(A[0], A[i])",
		"    heapify(A, i, 0)",
		"procedure heapify(A, n, i)",
		"  largest := i",
		"  if left < n and A[left] > A[largest]: largest := left",
		"  if right < n and A[right] > A[largest]: largest := right",
		"  if largest != i",
		"    swap(A[i], A[largest]); heapify(A, n, largest)",
	)
)

// Stack and queue listings.
var (
	PushListing = listing("push",
		"procedure push(stack, value)",
		"  item := newItem(value)",
		"  top := top + 1",
		"  stack[top] := item",
		"  return stack",
	)
	PopListing = listing("pop",
		"procedure pop(stack)",
		"  if stack is empty",
		"    return \"Stack Underflow\"",
		"  item := stack[top]",
		"  top := top - 1",
		"  return item",
	)
	EnqueueListing = listing("enqueue",
		"procedure enqueue(queue, value)",
		"  item := newItem(value)",
		"  rear.next := item; rear := item",
		"  return queue",
	)
	DequeueListing = listing("dequeue",
		"procedure dequeue(queue)",
		"  if queue is empty",
		"    return \"Queue Underflow\"",
		"  item := front",
		"  front := front.next",
		"  return item",
	)
)

// Linked list listings.
var (
	InsertAtBeginningListing = listing("insertAtBeginning",
		"procedure insertAtBeginning(head, value)",
		"  node := newNode(value)",
		"  node.next := head",
		"  head := node",
		"  return head",
	)
	InsertAtEndListing = listing("insertAtEnd",
		"procedure insertAtEnd(head, value)",
		"  node := newNode(value)",
		"  if head = null: head := node; return head",
		"  cur := head",
		"  while cur.next != null",
		"    cur := cur.next",
		"  cur.next := node",
	)
	InsertAtPositionListing = listing("insertAtPosition",
		"procedure insertAtPosition(head, value, pos)",
		"  if pos = 0: return insertAtBeginning(head, value)",
		"  cur := head; i := 0",
		"  while cur.next != null and i < pos-1",
		"    cur := cur.next; i := i+1",
		"  node := newNode(value)",
		"  node.next := cur.next",
		"  cur.next := node",
	)
	InsertAfterKeyListing = listing("insertAfterKey",
		"procedure insertAfterKey(head, key, value)",
		"  cur := head",
		"  while cur != null and cur.value != key",
		"    cur := cur.next",
		"  if cur = null: return insertAtEnd(head, value)",
		"  node := newNode(value)",
		"  node.next := cur.next",
		"  cur.next := node",
	)
	DeleteFromBeginningListing = listing("deleteFromBeginning",
		"procedure deleteFromBeginning(head)",
		"  if head = null: return \"List is empty\"",
		"  head := head.next",
		"  return head",
	)
	DeleteFromEndListing = listing("deleteFromEnd",
		"procedure deleteFromEnd(head)",
		"  if head = null: return \"List is empty\"",
		"  if head.next = null: return null",
		"  cur := head",
		"  while cur.next.next != null",
		"    cur := cur.next",
		"  cur.next := null",
	)
	DeleteFromPositionListing = listing("deleteFromPosition",
		"procedure deleteFromPosition(head, pos)",
		"  if head = null: return \"List is empty\"",
		"  if pos = 0: return head.next",
		"  cur := head; i := 0",
		"  while cur.next != null and i < pos-1",
		"    cur := cur.next; i := i+1",
		"  if cur.next = null: return \"Position out of range\"",
		"  cur.next := cur.next.next",
	)
	DeleteByKeyListing = listing("deleteByKey",
		"procedure deleteByKey(head, key)",
		"  if head = null: return \"List is empty\"",
		"  if head.value = key: return head.next",
		"  cur := head",
		"  while cur.next != null and cur.next.value != key",
		"    cur := cur.next",
		"  if cur.next = null: return \"Key not found\"",
		"  cur.next := cur.next.next",
	)
	TraverseListing = listing("traverse",
		"procedure traverse(head)",
		"  cur := head",
		"  while cur != null",
		"    visit(cur)",
		"    cur := cur.next",
	)
	SearchListListing = listing("search",
		"procedure search(head, key)",
		"  cur := head; i := 0",
		"  while cur != null",
		"    if cur.value = key: return i",
		"    cur := cur.next; i := i+1",
		"  return -1",
	)
)

// Tree listings.
var (
	BSTInsertListing = listing("bstInsert",
		"procedure insert(node, value)",
		"  if node = null: return newNode(value)",
		"  if value < node.value",
		"    node.left := insert(node.left, value)",
		"  else if value > node.value",
		"    node.right := insert(node.right, value)",
		"  return node",
	)
	BSTDeleteListing = listing("bstDelete",
		"procedure delete(node, value)",
		"  if node = null: return null",
		"  if value < node.value: node.left := delete(node.left, value)",
		"  else if value > node.value: node.right := delete(node.right, value)",
		"  else",
		"    if node.left = null: return node.right",
		"    if node.right = null: return node.left",
		"    succ := minNode(node.right)",
		"    node.value := succ.value",
		"    node.right := delete(node.right, succ.value)",
		"  return node",
	)
	BSTSearchListing = listing("bstSearch",
		"procedure search(node, value)",
		"  if node = null: return null",
		"  if value = node.value: return node",
		"  if value < node.value: return search(node.left, value)",
		"  return search(node.right, value)",
	)
	BinaryTreeInsertListing = listing("binaryTreeInsert",
		"procedure insert(root, value)",
		"  if root = null: return newNode(value)",
		"  queue := [root]",
		"  while queue is not empty",
		"    node := dequeue(queue)",
		"    if node.left = null: node.left := newNode(value); return",
		"    enqueue(queue, node.left)",
		"    if node.right = null: node.right := newNode(value); return",
		"    enqueue(queue, node.right)",
	)
	InOrderListing = listing("inorder",
		"procedure inorder(node)",
		"  if node = null: return",
		"  inorder(node.left)",
		"  visit(node)",
		"  inorder(node.right)",
	)
	PreOrderListing = listing("preorder",
		"procedure preorder(node)",
		"  if node = null: return",
		"  visit(node)",
		"  preorder(node.left)",
		"  preorder(node.right)",
	)
	PostOrderListing = listing("postorder",
		"procedure postorder(node)",
		"  if node = null: return",
		"  postorder(node.left)",
		"  postorder(node.right)",
		"  visit(node)",
	)
	LevelOrderListing = listing("levelorder",
		"procedure levelorder(root)",
		"  queue := [root]",
		"  while queue is not empty",
		"    node := dequeue(queue)",
		"    visit(node)",
		"    if node.left != null: enqueue(queue, node.left)",
		"    if node.right != null: enqueue(queue, node.right)",
	)
)

// Graph listings.
var (
	AddVertexListing = listing("addVertex",
		"procedure addVertex(G, v)",
		"  if v in G.V: return \"Vertex already exists\"",
		"  G.V := G.V + {v}",
	)
	RemoveVertexListing = listing("removeVertex",
		"procedure removeVertex(G, v)",
		"  if v not in G.V: return \"Vertex not found\"",
		"  remove every edge touching v",
		"  G.V := G.V - {v}",
	)
	AddEdgeListing = listing("addEdge",
		"procedure addEdge(G, u, v)",
		"  if u or v not in G.V: return \"Both vertices must exist\"",
		"  if (u, v) in G.E: return \"Edge already exists\"",
		"  G.E := G.E + {(u, v)}",
		"  if G is undirected: G.E := G.E + {(v, u)}",
	)
	RemoveEdgeListing = listing("removeEdge",
		"procedure removeEdge(G, u, v)",
		"  if (u, v) not in G.E: return \"Edge not found\"",
		"  G.E := G.E - {(u, v)}",
		"  if G is undirected: G.E := G.E - {(v, u)}",
	)
	BFSListing = listing("bfs",
		"procedure BFS(G, s)",
		"  visited := {s}; queue := [s]",
		"  while queue is not empty",
		"    u := dequeue(queue)",
		"    for each v in adj(u)",
		"      if v not in visited",
		"        visited := visited + {v}",
		"        enqueue(queue, v)",
		"    mark u visited",
	)
	DFSListing = listing("dfs",
		"procedure DFS(G, s)",
		"  visited := {}; stack := [s]",
		"  while stack is not empty",
		"    u := pop(stack)",
		"    if u not in visited",
		"      visited := visited + {u}",
		"      for each v in reverse(adj(u))",
		"        if v not in visited: push(stack, v)",
	)
	ShortestPathListing = listing("shortestPath",
		"procedure shortestPath(G, s, t)",
		"  parent := {s: s}; queue := [s]",
		"  while queue is not empty",
		"    u := dequeue(queue)",
		"    if u = t: return path(parent, t)",
		"    for each v in adj(u)",
		"      if v not in parent",
		"        parent[v] := u; enqueue(queue, v)",
		"  return no path",
	)
	TopologicalSortListing = listing("topologicalSort",
		"procedure topologicalSort(G)",
		"  indeg[v] := number of edges into v",
		"  queue := [v where indeg[v] = 0]",
		"  while queue is not empty",
		"    u := dequeue(queue); append u to order",
		"    for each v in adj(u)",
		"      indeg[v] := indeg[v] - 1",
		"      if indeg[v] = 0: enqueue(queue, v)",
		"  if |order| < |V|: graph has a cycle",
	)
	ComponentsListing = listing("components",
		"procedure components(G)",
		"  for each vertex s",
		"    if s not labelled",
		"      label every vertex reachable from s",
		"      ignoring edge direction",
	)
)

// Heap listings.
var (
	HeapInsertListing = listing("heapInsert",
		"procedure insert(H, value)",
		"  H.append(value)",
		"  i := size(H)-1",
		"  while i > 0",
		"    p := parent(i)",
		"    if better(H[i], H[p])",
		"      swap(H[i], H[p]); i := p",
		"    else break",
	)
	HeapDeleteListing = listing("heapDeleteRoot",
		"procedure deleteRoot(H)",
		"  if H is empty: return \"Heap is empty\"",
		"  root := H[0]",
		"  swap(H[0], H[last]); remove H[last]",
		"  siftDown(H, 0)",
		"  return root",
	)
	HeapPeekListing = listing("heapPeek",
		"procedure peek(H)",
		"  if H is empty: return \"Heap is empty\"",
		"  return H[0]",
	)
	BuildHeapListing = listing("buildHeap",
		"procedure buildHeap(A)",
		"  for i := n/2-1 downto 0",
		"    siftDown(A, i, n)",
		"procedure siftDown(A, i, n)",
		"  best := i",
		"  if left(i) < n and better(A[left], A[best]): best := left",
		"  if right(i) < n and better(A[right], A[best]): best := right",
		"  if best != i",
		"    swap(A[i], A[best]); siftDown(A, best, n)",
	)
	HeapSortHeapListing = listing("heapSortHeap",
		"procedure heapSort(H)",
		"  buildHeap(H)",
		"  result := []",
		"  for i := n-1 downto 1",
		"    swap(H[0], H[i])",
		"    prepend(result, H[i])",
		"    siftDown(H, 0, i)",
		"  prepend(result, H[0])",
	)
)
